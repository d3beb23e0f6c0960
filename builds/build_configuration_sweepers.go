package builds

import (
	"fmt"

	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/model"
)

// SweeperBuildOptions carries the inputs of a sweeper build.
type SweeperBuildOptions struct {
	Name            string
	ProviderName    string
	ParentProjectId string
	VCSRoot         model.VCSRoot
	SharedResources []string
	Config          AccTestConfiguration
	Trigger         *model.NightlyTriggerConfiguration
}

// BuildConfigurationForServiceSweeper deletes resources leaked by the
// acceptance tests. It holds write locks on the shared resources so no tests
// run against the project while it sweeps.
func BuildConfigurationForServiceSweeper(opts SweeperBuildOptions) model.BuildType {
	params := GoEnvParameters().
		Merge(TerraformLoggingParameters(opts.ProviderName)).
		Text("PACKAGE_PATH", fmt.Sprintf("./%s/sweeper", opts.ProviderName), "Path of the sweeper package").
		Text("SWEEPER_REGIONS", tcgen.SweeperRegions, "Regions to sweep").
		Text("SWEEP_RUN", "", "Comma separated list of sweepers to run; empty runs all").
		Hidden("env.SKIP_PROJECT_SWEEPER", "1", "Project sweepers run from their own build").
		Merge(ConfigureGoogleSpecificTestParameters(opts.Config)).
		Merge(model.ReadOnlySettings())

	bt := model.BuildType{
		Id:          model.JoinId(opts.ParentProjectId, opts.Name),
		Name:        opts.Name,
		Description: fmt.Sprintf("Sweeps resources left behind by acceptance tests of terraform-provider-%s", opts.ProviderName),
		VCSRoot:     opts.VCSRoot,
		Steps: []model.BuildStep{
			ConfigureGoEnv(),
			DownloadTerraformBinary(),
			RunSweepers(opts.Name),
		},
		Params:              params,
		Locks:               locks(opts.SharedResources, model.LockWrite),
		ArtifactRules:       "%teamcity.build.checkoutDir%/debug*.txt",
		ExecutionTimeoutMin: tcgen.SweeperTimeoutMin,
	}
	if opts.Trigger != nil {
		bt.Triggers = []model.NightlyTriggerConfiguration{*opts.Trigger}
	}

	return bt
}
