package projects

import (
	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/builds"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/evergreen-ci/tcgen/projects/reused"
	"github.com/pkg/errors"
)

// GoogleSubProjectBeta returns the subproject used for testing
// terraform-provider-google-beta.
func GoogleSubProjectBeta(allConfig *tcgen.AllContextParameters) (model.Project, error) {
	betaId := model.ReplaceCharsId("GOOGLE_BETA")

	betaConfig := builds.GetBetaAcceptanceTestConfig(allConfig)
	vcrConfig := builds.GetVcrAcceptanceTestConfig(allConfig)

	nightly, err := reused.NightlyTests(betaId, tcgen.ProviderNameBeta, model.HashiCorpVCSRootBeta(), betaConfig,
		nightlyTrigger(allConfig.Nightly))
	if err != nil {
		return model.Project{}, errors.Wrap(err, "creating Beta nightly tests project")
	}

	upstream, err := reused.MMUpstream(betaId, tcgen.ProviderNameBeta, model.ModularMagicianVCSRootBeta(), model.HashiCorpVCSRootBeta(), vcrConfig,
		model.NightlyTriggerConfiguration{})
	if err != nil {
		return model.Project{}, errors.Wrap(err, "creating Beta MM upstream project")
	}

	return model.Project{
		Id:          betaId,
		Name:        "Google Beta",
		Description: "Subproject containing builds for testing the Beta version of the Google provider",
		SubProjects: []model.Project{nightly, upstream},
		Params:      model.ReadOnlySettings(),
	}, nil
}
