package operations

import (
	"fmt"
	"strings"

	"github.com/cheynewallace/tabby"
	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/generator"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func List() cli.Command {
	const (
		projectsFlagName = "projects"
		buildsFlagName   = "builds"
		paramsFlagName   = "params"
		formatsFlagName  = "formats"
	)

	return cli.Command{
		Name:  "list",
		Usage: "displays the generated projects, build configurations or the available settings",
		Flags: addProjectFlag(addParamFlag(
			cli.BoolFlag{
				Name:  projectsFlagName,
				Usage: "list the projects of the tree",
			},
			cli.BoolFlag{
				Name:  buildsFlagName,
				Usage: "list the build configurations of the tree",
			},
			cli.BoolFlag{
				Name:  paramsFlagName,
				Usage: "list the context parameters and the environment variables that set them",
			},
			cli.BoolFlag{
				Name:  formatsFlagName,
				Usage: "list the supported output formats",
			})...),
		Before: mergeBeforeFuncs(
			requireKnownProject,
			requireOnlyOneBool(projectsFlagName, buildsFlagName, paramsFlagName, formatsFlagName),
		),
		Action: func(c *cli.Context) error {
			name := c.String(projectFlagName)

			switch {
			case c.Bool(paramsFlagName):
				return listParams()
			case c.Bool(formatsFlagName):
				return listFormats()
			}

			p, err := newContextSettings(c).assemble(name)
			if err != nil {
				return errors.Wrapf(err, "assembling project '%s'", name)
			}

			switch {
			case c.Bool(projectsFlagName):
				return listProjects(p)
			case c.Bool(buildsFlagName):
				return listBuilds(p)
			}
			return errors.Errorf("this code should not be reachable")
		},
	}
}

func listProjects(p model.Project) error {
	t := tabby.New()
	t.AddHeader("Id", "Name", "Builds", "Subprojects")
	err := p.Walk(func(path []string, proj model.Project) error {
		indent := strings.Repeat("  ", len(path))
		t.AddLine(indent+proj.Id, proj.Name, len(proj.BuildTypes), len(proj.SubProjects))
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("%d projects:\n", p.CountProjects())
	t.Print()
	return nil
}

func listBuilds(p model.Project) error {
	builds := p.AllBuildTypes()

	t := tabby.New()
	t.AddHeader("Id", "Name", "Schedule", "Locks")
	for _, bt := range builds {
		t.AddLine(bt.Id, bt.Name, describeTriggers(bt.Triggers), describeLocks(bt.Locks))
	}
	fmt.Printf("%d build configurations:\n", len(builds))
	t.Print()
	return nil
}

func describeTriggers(triggers []model.NightlyTriggerConfiguration) string {
	if len(triggers) == 0 {
		return "manual"
	}
	specs := make([]string, 0, len(triggers))
	for _, trigger := range triggers {
		spec, err := trigger.CronSpec()
		if err != nil {
			spec = "invalid"
		}
		if !trigger.Enabled {
			spec += " (disabled)"
		}
		specs = append(specs, spec)
	}
	return strings.Join(specs, "; ")
}

func describeLocks(locks []model.ResourceLock) string {
	out := make([]string, 0, len(locks))
	for _, lock := range locks {
		out = append(out, fmt.Sprintf("%s (%s)", lock.Resource, lock.Mode))
	}
	return strings.Join(out, ", ")
}

func listParams() error {
	t := tabby.New()
	t.AddHeader("Parameter", "Environment Variable")
	for _, key := range tcgen.ParameterKeys() {
		t.AddLine(key, tcgen.EnvVarName(key))
	}
	t.Print()
	return nil
}

func listFormats() error {
	for _, f := range generator.Formats {
		fmt.Println(f)
	}
	return nil
}
