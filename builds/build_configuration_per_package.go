package builds

import (
	"fmt"
	"strconv"

	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/model"
)

// PackageBuildOptions carries the inputs shared by every package build in a
// subproject.
type PackageBuildOptions struct {
	ProviderName    string
	ParentProjectId string
	VCSRoot         model.VCSRoot
	SharedResources []string
	// Trigger is nil for builds that only run on demand.
	Trigger         *model.NightlyTriggerConfiguration
}

// BuildConfigurationsForPackages creates one build configuration per
// package, in package order.
func BuildConfigurationsForPackages(packages []Package, opts PackageBuildOptions) []model.BuildType {
	out := make([]model.BuildType, 0, len(packages))
	for _, pkg := range packages {
		out = append(out, BuildConfigurationForSinglePackage(pkg, opts))
	}
	return out
}

// BuildConfigurationForSinglePackage runs the acceptance tests of one
// package. Builds hold read locks on the shared resources so that sweepers,
// which take write locks, never run at the same time.
func BuildConfigurationForSinglePackage(pkg Package, opts PackageBuildOptions) model.BuildType {
	params := AcceptanceTestBuildParams(tcgen.DefaultParallelism, tcgen.DefaultTestPrefix, tcgen.DefaultTestTimeoutHours).
		Merge(TerraformLoggingParameters(opts.ProviderName)).
		Merge(GoEnvParameters()).
		Text("PACKAGE_PATH", pkg.Path, "Path of the package under test").
		Merge(model.ReadOnlySettings())

	bt := model.BuildType{
		Id:          model.JoinId(opts.ParentProjectId, "PACKAGE", pkg.Name),
		Name:        pkg.DisplayName,
		Description: fmt.Sprintf("Acceptance tests for %s in terraform-provider-%s", pkg.Path, opts.ProviderName),
		VCSRoot:     opts.VCSRoot,
		Steps: []model.BuildStep{
			ConfigureGoEnv(),
			DownloadTerraformBinary(),
			RunAcceptanceTests(),
		},
		Params:              params,
		Locks:               locks(opts.SharedResources, model.LockRead),
		ArtifactRules:       "%teamcity.build.checkoutDir%/debug*.txt\n%teamcity.build.checkoutDir%/test-results.json",
		ExecutionTimeoutMin: tcgen.DefaultBuildTimeoutMin,
	}
	if opts.Trigger != nil {
		bt.Triggers = []model.NightlyTriggerConfiguration{*opts.Trigger}
	}

	return bt
}

// AcceptanceTestBuildParams are the knobs of a single acceptance test run.
func AcceptanceTestBuildParams(parallelism int, prefix string, timeoutHours int) model.ParamBlock {
	return model.ParamBlock{}.
		Hidden("env.TF_ACC", "1", "Set to a value to run the Acceptance Tests").
		Text("PARALLELISM", strconv.Itoa(parallelism), "Number of tests to run in parallel").
		Text("TEST_PREFIX", prefix, "Only tests matching this prefix are run").
		Text("TIMEOUT", strconv.Itoa(timeoutHours), "Test timeout in hours")
}

// TerraformLoggingParameters write provider and core debug logs to files
// that are kept as build artifacts.
func TerraformLoggingParameters(providerName string) model.ParamBlock {
	return model.ParamBlock{}.
		Hidden("env.TF_LOG", "DEBUG", "").
		Hidden("env.TF_LOG_CORE", "WARN", "").
		Hidden("env.TF_LOG_SDK_FRAMEWORK", "INFO", "").
		Hidden("env.TF_LOG_PATH_MASK", fmt.Sprintf("%%system.teamcity.build.checkoutDir%%/debug-%s-%%s.txt", providerName), "")
}

func GoEnvParameters() model.ParamBlock {
	return model.ParamBlock{}.
		Text("env.GO_VERSION", tcgen.DefaultGoVersion, "Go version used to build and test the provider").
		Text("env.TERRAFORM_CORE_VERSION", tcgen.DefaultTerraformCoreVersion, "The version of Terraform Core which should be used for testing").
		Hidden("env.GOFLAGS", "-mod=vendor", "")
}

func locks(resources []string, mode model.LockMode) []model.ResourceLock {
	if len(resources) == 0 {
		return nil
	}
	out := make([]model.ResourceLock, 0, len(resources))
	for _, r := range resources {
		out = append(out, model.ResourceLock{Resource: r, Mode: mode})
	}
	return out
}
