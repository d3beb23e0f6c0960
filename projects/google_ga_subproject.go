package projects

import (
	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/builds"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/evergreen-ci/tcgen/projects/reused"
	"github.com/pkg/errors"
)

// GoogleSubProjectGa returns the subproject used for testing
// terraform-provider-google (GA).
func GoogleSubProjectGa(allConfig *tcgen.AllContextParameters) (model.Project, error) {
	gaId := model.ReplaceCharsId("GOOGLE")

	// GA tests run with the GA identity, MM upstream builds with the VCR one.
	gaConfig := builds.GetGaAcceptanceTestConfig(allConfig)
	vcrConfig := builds.GetVcrAcceptanceTestConfig(allConfig)

	// Feature branch testing happens on Wednesday (4), so nightly tests run
	// every other night.
	nightly, err := reused.NightlyTests(gaId, tcgen.ProviderNameGa, model.HashiCorpVCSRootGa(), gaConfig,
		nightlyTrigger(allConfig.Nightly, model.DaysOfWeek("1-3,5-7")))
	if err != nil {
		return model.Project{}, errors.Wrap(err, "creating GA nightly tests project")
	}

	// The upstream sweeper keeps the default schedule.
	upstream, err := reused.MMUpstream(gaId, tcgen.ProviderNameGa, model.ModularMagicianVCSRootGa(), model.HashiCorpVCSRootGa(), vcrConfig,
		model.NightlyTriggerConfiguration{})
	if err != nil {
		return model.Project{}, errors.Wrap(err, "creating GA MM upstream project")
	}

	return model.Project{
		Id:          gaId,
		Name:        "Google",
		Description: "Subproject containing builds for testing the GA version of the Google provider",
		SubProjects: []model.Project{nightly, upstream},
		Params:      model.ReadOnlySettings(),
	}, nil
}
