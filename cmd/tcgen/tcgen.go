package main

import (
	"os"

	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/operations"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/send"
	"github.com/urfave/cli"
)

func main() {
	app := buildApp()
	grip.EmergencyFatal(app.Run(os.Args))
}

func buildApp() *cli.App {
	app := cli.NewApp()
	app.Name = "tcgen"
	app.Usage = "generate TeamCity configuration for the Google Cloud Terraform providers"
	app.Version = tcgen.ClientVersion

	app.Commands = []cli.Command{
		operations.Version(),
		operations.Generate(),
		operations.Validate(),
		operations.List(),
		operations.Schedule(),
	}

	// The lookup fails only without a home directory, in which case
	// --conf must be given.
	confPath, _ := tcgen.DefaultConfigPath()

	// These are global options. Use this to configure logging or
	// other options independent from specific sub commands.
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "level",
			Value: "info",
			Usage: "Specify lowest visible log level as string: 'emergency|alert|critical|error|warning|notice|info|debug|trace'",
		},
		cli.StringFlag{
			Name:  "conf, config, c",
			Usage: "specify the path of the context parameter file",
			Value: confPath,
		},
	}

	app.Before = func(c *cli.Context) error {
		return loggingSetup(app.Name, c.String("level"))
	}

	return app
}

func loggingSetup(name, l string) error {
	if err := grip.SetSender(send.MakeErrorLogger()); err != nil {
		return err
	}
	grip.SetName(name)

	sender := grip.GetSender()
	info := sender.Level()
	info.Threshold = level.FromString(l)

	return sender.SetLevel(info)
}
