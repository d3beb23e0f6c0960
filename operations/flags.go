package operations

import (
	"strings"

	"github.com/evergreen-ci/tcgen/generator"
	"github.com/urfave/cli"
)

const (
	confFlagName    = "conf"
	levelFlagName   = "level"
	projectFlagName = "project"
	paramFlagName   = "param"
	formatFlagName  = "format"
	outputFlagName  = "output"

	defaultProjectName = "root"
)

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func addProjectFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(projectFlagName, "p"),
		Usage: "name of the project tree to generate (root, ga or beta)",
		Value: defaultProjectName,
	})
}

func addParamFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringSliceFlag{
		Name:  paramFlagName,
		Usage: "override a context parameter as KEY=VALUE, e.g. ga.project=my-project; may be specified more than once",
	})
}

func addFormatFlag(flags ...cli.Flag) []cli.Flag {
	formats := make([]string, 0, len(generator.Formats))
	for _, f := range generator.Formats {
		formats = append(formats, string(f))
	}
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(formatFlagName, "f"),
		Usage: "output format (" + strings.Join(formats, ", ") + ")",
		Value: string(generator.FormatKotlin),
	})
}

func addOutputFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(outputFlagName, "o"),
		Usage: "file to write to; standard output when unset",
	})
}
