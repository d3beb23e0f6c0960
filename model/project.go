package model

// Project is a named node in the TeamCity project tree. Subprojects are kept
// in the order they were declared.
type Project struct {
	Id              string           `yaml:"id" json:"id"`
	Name            string           `yaml:"name" json:"name"`
	Description     string           `yaml:"description,omitempty" json:"description,omitempty"`
	VCSRoots        []VCSRoot        `yaml:"vcs_roots,omitempty" json:"vcs_roots,omitempty"`
	SharedResources []SharedResource `yaml:"shared_resources,omitempty" json:"shared_resources,omitempty"`
	BuildTypes      []BuildType      `yaml:"build_types,omitempty" json:"build_types,omitempty"`
	SubProjects     []Project        `yaml:"subprojects,omitempty" json:"subprojects,omitempty"`
	Params          ParamBlock       `yaml:"params,omitempty" json:"params,omitempty"`
}

// BuildType is a single TeamCity build configuration.
type BuildType struct {
	Id          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	VCSRoot     VCSRoot     `yaml:"vcs_root" json:"vcs_root"`
	Steps       []BuildStep `yaml:"steps" json:"steps"`
	Params      ParamBlock  `yaml:"params,omitempty" json:"params,omitempty"`

	Triggers []NightlyTriggerConfiguration `yaml:"triggers,omitempty" json:"triggers,omitempty"`
	Locks    []ResourceLock                `yaml:"locks,omitempty" json:"locks,omitempty"`

	// ArtifactRules lists files to keep after the build, one rule per line.
	ArtifactRules       string `yaml:"artifact_rules,omitempty" json:"artifact_rules,omitempty"`
	ExecutionTimeoutMin int    `yaml:"execution_timeout_min,omitempty" json:"execution_timeout_min,omitempty"`
}

// BuildStep is a shell script run inside the checkout directory.
type BuildStep struct {
	Name       string `yaml:"name" json:"name"`
	Script     string `yaml:"script" json:"script"`
	WorkingDir string `yaml:"working_dir,omitempty" json:"working_dir,omitempty"`
}

// SharedResource is a named lock that build configurations can hold.
// Quota 0 means any number of readers but a single writer.
type SharedResource struct {
	Id    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Quota int    `yaml:"quota,omitempty" json:"quota,omitempty"`
}

type LockMode string

const (
	LockRead  LockMode = "read"
	LockWrite LockMode = "write"
)

// ResourceLock is a build configuration's hold on a SharedResource,
// referenced by name.
type ResourceLock struct {
	Resource string   `yaml:"resource" json:"resource"`
	Mode     LockMode `yaml:"mode" json:"mode"`
}

// Walk calls fn on p and every descendant project, depth first in
// declaration order. path holds the ids of the ancestors of the visited
// project. Walking stops at the first error.
func (p Project) Walk(fn func(path []string, p Project) error) error {
	return p.walk(nil, fn)
}

func (p Project) walk(path []string, fn func([]string, Project) error) error {
	if err := fn(path, p); err != nil {
		return err
	}
	childPath := append(append([]string{}, path...), p.Id)
	for _, sub := range p.SubProjects {
		if err := sub.walk(childPath, fn); err != nil {
			return err
		}
	}
	return nil
}

// FindProject returns the project in the tree with the given id.
func (p Project) FindProject(id string) (Project, bool) {
	var found *Project
	_ = p.Walk(func(_ []string, proj Project) error {
		if found == nil && proj.Id == id {
			found = &proj
		}
		return nil
	})
	if found == nil {
		return Project{}, false
	}
	return *found, true
}

// FindBuildType returns the build configuration in the tree with the given
// id.
func (p Project) FindBuildType(id string) (BuildType, bool) {
	for _, bt := range p.AllBuildTypes() {
		if bt.Id == id {
			return bt, true
		}
	}
	return BuildType{}, false
}

// AllBuildTypes returns the build configurations of the whole tree in walk
// order.
func (p Project) AllBuildTypes() []BuildType {
	var out []BuildType
	_ = p.Walk(func(_ []string, proj Project) error {
		out = append(out, proj.BuildTypes...)
		return nil
	})
	return out
}

// CountProjects returns the number of projects in the tree, including p.
func (p Project) CountProjects() int {
	n := 0
	_ = p.Walk(func(_ []string, _ Project) error {
		n++
		return nil
	})
	return n
}

// SubProjectIds returns the ids of the direct children in order.
func (p Project) SubProjectIds() []string {
	out := make([]string, 0, len(p.SubProjects))
	for _, sub := range p.SubProjects {
		out = append(out, sub.Id)
	}
	return out
}
