package operations

import (
	"fmt"

	"github.com/evergreen-ci/tcgen/validator"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func Validate() cli.Command {
	const quietFlagName = "quiet"

	return cli.Command{
		Name:  "validate",
		Usage: "assemble a project tree and check it for errors",
		Flags: addProjectFlag(addParamFlag(
			cli.BoolFlag{
				Name:  joinFlagNames(quietFlagName, "q"),
				Usage: "suppress warnings",
			})...),
		Before: requireKnownProject,
		Action: func(c *cli.Context) error {
			name := c.String(projectFlagName)
			quiet := c.Bool(quietFlagName)

			p, err := newContextSettings(c).assemble(name)
			if err != nil {
				return errors.Wrapf(err, "assembling project '%s'", name)
			}

			errs := validator.CheckProject(p)
			if quiet {
				errs = errs.AtLevel(validator.Error)
			}
			if len(errs) > 0 {
				fmt.Println(errs)
			}
			if errs.HasErrors() {
				return errors.Errorf("project '%s' is invalid", name)
			}

			fmt.Printf("project '%s' (%d projects, %d build configurations) is valid\n", name, p.CountProjects(), len(p.AllBuildTypes()))
			return nil
		},
	}
}
