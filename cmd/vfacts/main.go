package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/autopeer-io/vfacts/cmd/vfacts/app"
)

func main() {
	app.NewApp().Run()
}
