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

// NightlyTests returns a project connected to the canonical provider
// repository where every package's acceptance tests run on the given
// schedule. A service sweeper runs SweeperStartHourOffset hours after the
// tests start. Empty schedule fields take the nightly defaults.
func NightlyTests(parentProject, providerName string, vcsRoot model.VCSRoot, config builds.AccTestConfiguration, cron model.NightlyTriggerConfiguration) (model.Project, error) {
	projectId := model.JoinId(parentProject, tcgen.NightlyTestsProjectId)
	cron = cron.WithDefaults()

	packages, err := builds.Packages(providerName)
	if err != nil {
		return model.Project{}, errors.Wrapf(err, "getting packages for project '%s'", projectId)
	}
	sharedResources, err := nightlySharedResources(providerName)
	if err != nil {
		return model.Project{}, errors.Wrapf(err, "getting shared resources for project '%s'", projectId)
	}

	packageBuilds := builds.BuildConfigurationsForPackages(packages, builds.PackageBuildOptions{
		ProviderName:    providerName,
		ParentProjectId: projectId,
		VCSRoot:         vcsRoot,
		SharedResources: sharedResources,
		Trigger:         &cron,
	})

	sweeperCron := cron.Offset(tcgen.SweeperStartHourOffset)
	sweeper := builds.BuildConfigurationForServiceSweeper(builds.SweeperBuildOptions{
		Name:            tcgen.ServiceSweeperName,
		ProviderName:    providerName,
		ParentProjectId: projectId,
		VCSRoot:         vcsRoot,
		SharedResources: sharedResources,
		Config:          config,
		Trigger:         &sweeperCron,
	})

	grip.Debug(message.Fields{
		"message":  "assembled nightly tests project",
		"project":  projectId,
		"provider": providerName,
		"packages": len(packages),
		"days":     cron.DaysOfWeek,
	})

	return model.Project{
		Id:          projectId,
		Name:        "Nightly Tests",
		Description: fmt.Sprintf("A project connected to the %s/terraform-provider-%s repository, where scheduled nightly tests run and users can trigger ad-hoc builds", tcgen.DefaultRepoOwner, providerName),
		BuildTypes:  append(packageBuilds, sweeper),
		Params:      builds.ConfigureGoogleSpecificTestParameters(config),
	}, nil
}

func nightlySharedResources(providerName string) ([]string, error) {
	switch providerName {
	case tcgen.ProviderNameGa:
		return []string{tcgen.SharedResourceNameGa}, nil
	case tcgen.ProviderNameBeta:
		return []string{tcgen.SharedResourceNameBeta}, nil
	default:
		return nil, errors.Errorf("unknown provider '%s'", providerName)
	}
}
