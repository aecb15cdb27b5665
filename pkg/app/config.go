package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlagName = "config"

func addConfigFlag(basename string, cfgFile *string, fs *pflag.FlagSet) {
	fs.StringVarP(cfgFile, configFlagName, "c", *cfgFile,
		fmt.Sprintf("Read configuration from the specified file. Without it, %s.yaml is looked up in ., $HOME/.%s and /etc/%s.", basename, basename, basename))
}

// readConfig loads the config file into v and enables environment lookups.
// A missing default config file is not an error; a missing explicit one is.
func readConfig(v *viper.Viper, basename, cfgFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer())
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(basename)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+basename))
		}
		v.AddConfigPath(filepath.Join("/etc", basename))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read configuration file %q: %w", cfgFile, err)
	}
	return nil
}
