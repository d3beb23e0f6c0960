package operations

import (
	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/evergreen-ci/tcgen/projects"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// contextSettings are the inputs shared by every command that assembles a
// project tree.
type contextSettings struct {
	ConfPath  string
	Overrides []string
	// Lookup reads environment variables; nil reads the process
	// environment.
	Lookup func(string) (string, bool)
}

func newContextSettings(c *cli.Context) contextSettings {
	return contextSettings{
		ConfPath:  c.GlobalString(confFlagName),
		Overrides: c.StringSlice(paramFlagName),
	}
}

// load reads the context parameters from the file, then applies the
// environment and the command line overrides in that order.
func (s contextSettings) load() (*tcgen.AllContextParameters, error) {
	confPath := s.ConfPath
	if confPath == "" {
		var err error
		if confPath, err = tcgen.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	params, err := tcgen.LoadContextParameters(confPath)
	if err != nil {
		return nil, err
	}
	if err = params.ApplyEnvironment(s.Lookup); err != nil {
		return nil, err
	}
	if err = params.ApplyOverrides(s.Overrides); err != nil {
		return nil, err
	}
	if err = params.ValidateAndDefault(); err != nil {
		return nil, errors.Wrapf(err, "invalid context parameters in '%s'", confPath)
	}

	return params, nil
}

func (s contextSettings) assemble(name string) (model.Project, error) {
	params, err := s.load()
	if err != nil {
		return model.Project{}, err
	}

	p, err := projects.Assemble(name, params)
	if err != nil {
		return model.Project{}, err
	}

	grip.Info(message.Fields{
		"message":     "assembled project tree",
		"name":        name,
		"root":        p.Id,
		"projects":    p.CountProjects(),
		"build_types": len(p.AllBuildTypes()),
	})

	return p, nil
}
