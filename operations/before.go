package operations

import (
	"strings"

	"github.com/evergreen-ci/tcgen/generator"
	"github.com/evergreen-ci/tcgen/projects"
	"github.com/evergreen-ci/tcgen/util"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var (
	requireKnownProject = func(c *cli.Context) error {
		name := c.String(projectFlagName)
		if !util.StringSliceContains(projects.Names(), name) {
			return errors.Errorf("unknown project '%s', must be one of: %s", name, strings.Join(projects.Names(), ", "))
		}
		return nil
	}

	requireKnownFormat = func(c *cli.Context) error {
		return generator.Format(c.String(formatFlagName)).Validate()
	}
)

func requireOnlyOneBool(flags ...string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		set := 0
		for _, f := range flags {
			if c.Bool(f) {
				set++
			}
		}
		if set != 1 {
			return errors.Errorf("must specify exactly one of: %s", strings.Join(flags, ", "))
		}
		return nil
	}
}

func requirePositiveInt(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if c.Int(name) <= 0 {
			return errors.Errorf("flag '--%s' must be positive", name)
		}
		return nil
	}
}

func mergeBeforeFuncs(ops ...cli.BeforeFunc) cli.BeforeFunc {
	return func(c *cli.Context) error {
		catcher := grip.NewBasicCatcher()

		for _, op := range ops {
			catcher.Add(op(c))
		}

		return catcher.Resolve()
	}
}
