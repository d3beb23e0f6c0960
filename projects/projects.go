package projects

import (
	"sort"

	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/pkg/errors"
)

type assembler func(*tcgen.AllContextParameters) (model.Project, error)

var assemblers = map[string]assembler{
	"root": GoogleCloudRootProject,
	"ga":   GoogleSubProjectGa,
	"beta": GoogleSubProjectBeta,
}

// Names returns the names Assemble accepts.
func Names() []string {
	out := make([]string, 0, len(assemblers))
	for name := range assemblers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Assemble builds the named project tree from allConfig.
func Assemble(name string, allConfig *tcgen.AllContextParameters) (model.Project, error) {
	fn, ok := assemblers[name]
	if !ok {
		return model.Project{}, errors.Errorf("unknown project '%s'", name)
	}
	if allConfig == nil {
		return model.Project{}, errors.New("context parameters must not be nil")
	}
	p, err := fn(allConfig)
	return p, errors.Wrapf(err, "assembling project '%s'", name)
}

// nightlyTrigger returns the nightly test schedule for a subproject: the
// project's own options followed by any overrides from the context
// parameters.
func nightlyTrigger(settings tcgen.NightlySettings, opts ...model.TriggerOption) model.NightlyTriggerConfiguration {
	if settings.Branch != "" {
		opts = append(opts, model.OnBranch(settings.Branch))
	}
	if settings.StartHour != nil {
		opts = append(opts, model.StartHour(*settings.StartHour))
	}
	if settings.DaysOfMonth != "" {
		opts = append(opts, model.DaysOfMonth(settings.DaysOfMonth))
	}
	if settings.Disabled {
		opts = append(opts, model.Disabled())
	}
	return model.NewNightlyTriggerConfiguration(opts...)
}
