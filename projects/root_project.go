package projects

import (
	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const RootProjectId = "TERRAFORM_PROVIDER_GOOGLE"

// GoogleCloudRootProject returns the top of the tree: the GA and Beta
// subprojects, the VCS roots they check out and the shared resources their
// builds lock.
func GoogleCloudRootProject(allConfig *tcgen.AllContextParameters) (model.Project, error) {
	ga, err := GoogleSubProjectGa(allConfig)
	if err != nil {
		return model.Project{}, errors.Wrap(err, "creating GA subproject")
	}
	beta, err := GoogleSubProjectBeta(allConfig)
	if err != nil {
		return model.Project{}, errors.Wrap(err, "creating Beta subproject")
	}

	p := model.Project{
		Id:          RootProjectId,
		Name:        "Google Cloud",
		Description: "Contains all testing projects for the GA and Beta versions of the Google provider.",
		VCSRoots: []model.VCSRoot{
			model.HashiCorpVCSRootGa(),
			model.HashiCorpVCSRootBeta(),
			model.ModularMagicianVCSRootGa(),
			model.ModularMagicianVCSRootBeta(),
		},
		SharedResources: []model.SharedResource{
			sharedResource(tcgen.SharedResourceNameGa),
			sharedResource(tcgen.SharedResourceNameBeta),
			sharedResource(tcgen.SharedResourceNameVcr),
		},
		SubProjects: []model.Project{ga, beta},
		Params:      model.ReadOnlySettings(),
	}

	grip.Info(message.Fields{
		"message":     "assembled root project",
		"project":     p.Id,
		"projects":    p.CountProjects(),
		"build_types": len(p.AllBuildTypes()),
	})

	return p, nil
}

func sharedResource(name string) model.SharedResource {
	return model.SharedResource{
		Id:   model.JoinId(name, "SHARED_RESOURCE"),
		Name: name,
	}
}
