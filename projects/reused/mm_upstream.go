package reused

import (
	"fmt"

	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/builds"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// MMUpstream returns a project connected to the modular-magician mirror of
// the provider, where users trigger ad-hoc builds against the branches of
// upstream pull requests. Package builds have no trigger. The only scheduled
// build is a sweeper that checks out the canonical repository and cleans
// the VCR project on the given schedule; a zero schedule is the default
// nightly trigger.
func MMUpstream(parentProject, providerName string, vcsRoot, cronSweeperVcsRoot model.VCSRoot, config builds.AccTestConfiguration, cron model.NightlyTriggerConfiguration) (model.Project, error) {
	projectId := model.JoinId(parentProject, tcgen.MMUpstreamProjectId)
	cron = cron.WithDefaults()

	packages, err := builds.Packages(providerName)
	if err != nil {
		return model.Project{}, errors.Wrapf(err, "getting packages for project '%s'", projectId)
	}
	sharedResources := []string{tcgen.SharedResourceNameVcr}

	packageBuilds := builds.BuildConfigurationsForPackages(packages, builds.PackageBuildOptions{
		ProviderName:    providerName,
		ParentProjectId: projectId,
		VCSRoot:         vcsRoot,
		SharedResources: sharedResources,
	})

	cronSweeper := builds.BuildConfigurationForServiceSweeper(builds.SweeperBuildOptions{
		Name:            tcgen.ServiceSweeperCronName,
		ProviderName:    providerName,
		ParentProjectId: projectId,
		VCSRoot:         cronSweeperVcsRoot,
		SharedResources: sharedResources,
		Config:          config,
		Trigger:         &cron,
	})

	// Ad-hoc sweeper against the mirror, for cleaning up after a PR's tests.
	adHocSweeper := builds.BuildConfigurationForServiceSweeper(builds.SweeperBuildOptions{
		Name:            tcgen.ServiceSweeperName,
		ProviderName:    providerName,
		ParentProjectId: projectId,
		VCSRoot:         vcsRoot,
		SharedResources: sharedResources,
		Config:          config,
	})

	grip.Debug(message.Fields{
		"message":  "assembled MM upstream project",
		"project":  projectId,
		"provider": providerName,
		"packages": len(packages),
	})

	return model.Project{
		Id:          projectId,
		Name:        "Upstream MM Testing",
		Description: fmt.Sprintf("A project connected to the %s/terraform-provider-%s repository, to let users trigger ad-hoc builds against branches for PRs", tcgen.ModularMagicianRepoOwner, providerName),
		BuildTypes:  append(packageBuilds, adHocSweeper, cronSweeper),
		Params:      builds.ConfigureGoogleSpecificTestParameters(config),
	}, nil
}
