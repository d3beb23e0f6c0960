package operations

import (
	"fmt"

	"github.com/evergreen-ci/tcgen"
	"github.com/urfave/cli"
)

func Version() cli.Command {
	return cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "prints the version of the generator",
		Action: func(c *cli.Context) error {
			fmt.Println(tcgen.ClientVersion)
			return nil
		},
	}
}
