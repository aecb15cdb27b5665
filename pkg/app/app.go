// Package app builds cobra commands whose options come, in increasing order
// of precedence, from defaults, a config file, VFACTS_* environment variables
// and flags.
package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/component-base/term"

	"github.com/autopeer-io/vfacts/pkg/log"
)

// EnvPrefix prefixes every environment variable read by an App.
const EnvPrefix = "VFACTS"

// RunFunc is the entry point of a command once options are loaded.
type RunFunc func() error

// Option configures an App.
type Option func(*App)

// App is a command line application.
type App struct {
	name        string
	shortDesc   string
	description string
	options     NamedFlagSetOptions
	runFunc     RunFunc
	args        cobra.PositionalArgs
	noConfig    bool
	commands    []*cobra.Command
	onReload    func(v *viper.Viper)
	cfgFile     string

	viper *viper.Viper
	cmd   *cobra.Command
}

func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithOptions sets the options struct populated before RunFunc is called.
func WithOptions(opts NamedFlagSetOptions) Option {
	return func(a *App) { a.options = opts }
}

func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.runFunc = run }
}

// WithDefaultValidArgs rejects any positional argument.
func WithDefaultValidArgs() Option {
	return func(a *App) {
		a.args = func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if len(arg) > 0 {
					return fmt.Errorf("%q does not take any arguments, got %q", cmd.CommandPath(), args)
				}
			}
			return nil
		}
	}
}

// WithNoConfig disables the --config flag and environment variables.
func WithNoConfig() Option {
	return func(a *App) { a.noConfig = true }
}

// WithCommands adds subcommands.
func WithCommands(cmds ...*cobra.Command) Option {
	return func(a *App) { a.commands = append(a.commands, cmds...) }
}

// WithConfigReload registers fn to run after the config file changed on
// disk. The log level is reloaded regardless.
func WithConfigReload(fn func(v *viper.Viper)) Option {
	return func(a *App) { a.onReload = fn }
}

// NewApp creates an App named name.
func NewApp(name string, shortDesc string, opts ...Option) *App {
	a := &App{
		name:      name,
		shortDesc: shortDesc,
		viper:     viper.New(),
	}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

// Command returns the cobra command, to be run directly or added to a parent.
func (a *App) Command() *cobra.Command { return a.cmd }

// Run executes the command and exits the process on failure.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.shortDesc,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          a.args,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true
	cmd.Flags().SetNormalizeFunc(cliflag.WordSepNormalizeFunc)
	cmd.AddCommand(a.commands...)

	var fss cliflag.NamedFlagSets
	if a.options != nil {
		fss = a.options.Flags()
	}
	if !a.noConfig && a.options != nil {
		addConfigFlag(a.name, &a.cfgFile, fss.FlagSet("global"))
	}
	for _, f := range fss.FlagSets {
		cmd.Flags().AddFlagSet(f)
	}

	if len(fss.Order) > 0 {
		cols, _, _ := term.TerminalSize(cmd.OutOrStdout())
		cliflag.SetUsageAndHelpFunc(cmd, fss, cols)
	}

	if a.runFunc != nil {
		cmd.RunE = a.runCommand
	}
	a.cmd = cmd
}

func (a *App) runCommand(cmd *cobra.Command, _ []string) error {
	if a.options != nil {
		if err := a.loadOptions(cmd); err != nil {
			return err
		}
	}

	var logOpts *log.Options
	if p, ok := a.options.(LogOptionsProvider); ok {
		logOpts = p.LogOptions()
	}
	log.Init(logOpts)

	if !a.noConfig && a.viper.ConfigFileUsed() != "" {
		a.watchConfig()
	}

	return a.runFunc()
}

// loadOptions merges config file and environment into the options, then
// completes and validates them.
func (a *App) loadOptions(cmd *cobra.Command) error {
	if !a.noConfig {
		if err := a.viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if err := readConfig(a.viper, a.name, a.cfgFile); err != nil {
			return err
		}
		if err := a.viper.Unmarshal(a.options); err != nil {
			return fmt.Errorf("failed to unmarshal configuration: %w", err)
		}
	}

	if err := a.options.Complete(); err != nil {
		return err
	}
	return a.options.Validate()
}

func (a *App) watchConfig() {
	a.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Config file changed", "file", e.Name, "op", e.Op.String())
		if level := a.viper.GetString("log.level"); level != "" {
			if err := log.SetLevel(level); err != nil {
				log.Error(err, "Ignoring invalid log level from config file")
			}
		}
		if a.onReload != nil {
			a.onReload(a.viper)
		}
	})
	a.viper.WatchConfig()
}

func envKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_", "-", "_")
}
