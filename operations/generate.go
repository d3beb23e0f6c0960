package operations

import (
	"os"

	"github.com/evergreen-ci/tcgen/generator"
	"github.com/evergreen-ci/tcgen/util"
	"github.com/evergreen-ci/tcgen/validator"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func Generate() cli.Command {
	const (
		skipValidationFlagName = "skip-validation"
		subprojectFlagName     = "subproject"
	)

	return cli.Command{
		Name:  "generate",
		Usage: "assemble a project tree and write its configuration",
		Flags: addProjectFlag(addFormatFlag(addOutputFlag(addParamFlag(
			cli.BoolFlag{
				Name:  skipValidationFlagName,
				Usage: "write the configuration even if it has validation errors",
			},
			cli.StringFlag{
				Name:  joinFlagNames(subprojectFlagName, "s"),
				Usage: "only write the subproject with this id, e.g. GOOGLE_NIGHTLYTESTS",
			})...)...)...),
		Before: mergeBeforeFuncs(requireKnownProject, requireKnownFormat),
		Action: func(c *cli.Context) error {
			name := c.String(projectFlagName)
			format := generator.Format(c.String(formatFlagName))
			output := c.String(outputFlagName)
			skipValidation := c.Bool(skipValidationFlagName)
			subproject := c.String(subprojectFlagName)

			p, err := newContextSettings(c).assemble(name)
			if err != nil {
				return errors.Wrapf(err, "assembling project '%s'", name)
			}
			if subproject != "" {
				sub, ok := p.FindProject(subproject)
				if !ok {
					return errors.Errorf("project '%s' has no subproject '%s'", name, subproject)
				}
				p = sub
				name = subproject
			}

			errs := validator.CheckProject(p)
			for _, warning := range errs.AtLevel(validator.Warning) {
				grip.Warning(warning.Message)
			}
			if errs.HasErrors() {
				if !skipValidation {
					return errors.Errorf("project '%s' is invalid:\n%s", name, errs.AtLevel(validator.Error))
				}
				grip.Error(message.Fields{
					"message": "writing configuration with validation errors",
					"project": name,
					"errors":  errs.AtLevel(validator.Error).String(),
				})
			}

			out, err := generator.Render(p, format)
			if err != nil {
				return errors.Wrapf(err, "rendering project '%s'", name)
			}

			grip.Debug(message.Fields{
				"message": "writing configuration",
				"path":    output,
				"format":  format,
				"bytes":   len(out),
			})

			return util.WriteOutput(output, os.Stdout, out)
		},
	}
}
