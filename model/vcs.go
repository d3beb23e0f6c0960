package model

import (
	"fmt"

	"github.com/evergreen-ci/tcgen"
)

// VCSRoot is a git repository location used as the source of a build.
type VCSRoot struct {
	Id         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	URL        string `yaml:"url" json:"url"`
	Branch     string `yaml:"branch" json:"branch"`
	BranchSpec string `yaml:"branch_spec" json:"branch_spec"`
}

func (r VCSRoot) IsZero() bool { return r == VCSRoot{} }

func newGitVCSRoot(idPrefix, owner, providerName, branchSpec string) VCSRoot {
	url := fmt.Sprintf("https://github.com/%s/terraform-provider-%s", owner, providerName)
	return VCSRoot{
		Id:         JoinId(idPrefix, providerName),
		Name:       fmt.Sprintf("%s#%s", url, tcgen.DefaultBranchName),
		URL:        url,
		Branch:     tcgen.DefaultBranchName,
		BranchSpec: branchSpec,
	}
}

// HashiCorpVCSRoot is the canonical downstream provider repository.
func HashiCorpVCSRoot(providerName string) VCSRoot {
	return newGitVCSRoot("HashiCorpVCSRoot", tcgen.DefaultRepoOwner, providerName, "+:*")
}

// ModularMagicianVCSRoot is the mirror that upstream changes are generated
// into before they are merged downstream.
func ModularMagicianVCSRoot(providerName string) VCSRoot {
	return newGitVCSRoot("ModularMagicianVCSRoot", tcgen.ModularMagicianRepoOwner, providerName, "+:(refs/heads/*)")
}

func HashiCorpVCSRootGa() VCSRoot { return HashiCorpVCSRoot(tcgen.ProviderNameGa) }
func HashiCorpVCSRootBeta() VCSRoot { return HashiCorpVCSRoot(tcgen.ProviderNameBeta) }
func ModularMagicianVCSRootGa() VCSRoot { return ModularMagicianVCSRoot(tcgen.ProviderNameGa) }
func ModularMagicianVCSRootBeta() VCSRoot { return ModularMagicianVCSRoot(tcgen.ProviderNameBeta) }
