package validator

import (
	"fmt"
	"strings"

	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/evergreen-ci/tcgen/util"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

type projectValidator func(model.Project) ValidationErrors

type ValidationErrorLevel int64

const (
	Error ValidationErrorLevel = iota
	Warning
)

func (l ValidationErrorLevel) String() string {
	switch l {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

type ValidationError struct {
	Level   ValidationErrorLevel `json:"level" yaml:"level"`
	Message string               `json:"message" yaml:"message"`
}

func (vr ValidationError) Error() string {
	return vr.Message
}

type ValidationErrors []ValidationError

// AtLevel returns the errors of the given level.
func (v ValidationErrors) AtLevel(level ValidationErrorLevel) ValidationErrors {
	out := ValidationErrors{}
	for _, err := range v {
		if err.Level == level {
			out = append(out, err)
		}
	}
	return out
}

func (v ValidationErrors) HasErrors() bool {
	return len(v.AtLevel(Error)) > 0
}

func (v ValidationErrors) String() string {
	lines := make([]string, 0, len(v))
	for _, err := range v {
		lines = append(lines, fmt.Sprintf("%s: %s", err.Level, err.Message))
	}
	return strings.Join(lines, "\n")
}

// Functions used to validate a generated project tree. Each returns every
// problem it finds rather than stopping at the first.
var projectValidators = []projectValidator{
	validateIds,
	validateNames,
	validateVCSRoots,
	validateBuildSteps,
	validateTriggers,
	validateNightlySchedules,
	validateLocks,
	validateReadOnlySettings,
}

// CheckProject runs every validator over the tree rooted at p.
func CheckProject(p model.Project) ValidationErrors {
	validationErrs := ValidationErrors{}
	for _, v := range projectValidators {
		validationErrs = append(validationErrs, v(p)...)
	}

	grip.Debug(message.Fields{
		"message":  "validated project",
		"project":  p.Id,
		"errors":   len(validationErrs.AtLevel(Error)),
		"warnings": len(validationErrs.AtLevel(Warning)),
	})

	return validationErrs
}

// Project and build configuration ids share one namespace in TeamCity and
// must be unique across the server.
func validateIds(p model.Project) ValidationErrors {
	errs := ValidationErrors{}
	seen := map[string]string{}
	check := func(kind, id string) {
		if !model.ValidId(id) {
			errs = append(errs, ValidationError{
				Level:   Error,
				Message: fmt.Sprintf("%s id '%s' must start with a latin letter, contain only latin letters, digits and underscores, and be at most 225 characters", kind, id),
			})
		}
		if prev, ok := seen[id]; ok {
			errs = append(errs, ValidationError{
				Level:   Error,
				Message: fmt.Sprintf("%s id '%s' is already used by a %s", kind, id, prev),
			})
			return
		}
		seen[id] = kind
	}

	_ = p.Walk(func(_ []string, proj model.Project) error {
		check("project", proj.Id)
		for _, bt := range proj.BuildTypes {
			check("build configuration", bt.Id)
		}
		return nil
	})

	return errs
}

func validateNames(p model.Project) ValidationErrors {
	errs := ValidationErrors{}
	_ = p.Walk(func(_ []string, proj model.Project) error {
		if proj.Name == "" {
			errs = append(errs, ValidationError{
				Level:   Error,
				Message: fmt.Sprintf("project '%s' must have a name", proj.Id),
			})
		}
		if proj.Description == "" {
			errs = append(errs, ValidationError{
				Level:   Warning,
				Message: fmt.Sprintf("project '%s' has no description", proj.Id),
			})
		}
		for _, bt := range proj.BuildTypes {
			if bt.Name == "" {
				errs = append(errs, ValidationError{
					Level:   Error,
					Message: fmt.Sprintf("build configuration '%s' must have a name", bt.Id),
				})
			}
		}
		return nil
	})
	return errs
}

// Every build needs a VCS root to check out. Roots are normally registered
// on an ancestor project; a root that is not is only a warning since
// subprojects may be generated on their own.
func validateVCSRoots(p model.Project) ValidationErrors {
	errs := ValidationErrors{}
	declared := map[string][]model.VCSRoot{}
	_ = p.Walk(func(path []string, proj model.Project) error {
		declared[proj.Id] = proj.VCSRoots
		for _, root := range proj.VCSRoots {
			if root.URL == "" {
				errs = append(errs, ValidationError{
					Level:   Error,
					Message: fmt.Sprintf("VCS root '%s' in project '%s' must have a URL", root.Id, proj.Id),
				})
			}
		}

		for _, bt := range proj.BuildTypes {
			if bt.VCSRoot.IsZero() || bt.VCSRoot.URL == "" {
				errs = append(errs, ValidationError{
					Level:   Error,
					Message: fmt.Sprintf("build configuration '%s' must have a VCS root with a URL", bt.Id),
				})
				continue
			}
			if !rootDeclared(bt.VCSRoot, append(append([]string{}, path...), proj.Id), declared) {
				errs = append(errs, ValidationError{
					Level:   Warning,
					Message: fmt.Sprintf("VCS root '%s' of build configuration '%s' is not registered on any enclosing project", bt.VCSRoot.Id, bt.Id),
				})
			}
		}
		return nil
	})
	return errs
}

func rootDeclared(root model.VCSRoot, path []string, declared map[string][]model.VCSRoot) bool {
	for _, id := range path {
		for _, r := range declared[id] {
			if r.Id == root.Id {
				return true
			}
		}
	}
	return false
}

func validateBuildSteps(p model.Project) ValidationErrors {
	errs := ValidationErrors{}
	for _, bt := range p.AllBuildTypes() {
		if len(bt.Steps) == 0 {
			errs = append(errs, ValidationError{
				Level:   Error,
				Message: fmt.Sprintf("build configuration '%s' must have at least one step", bt.Id),
			})
		}
		for i, step := range bt.Steps {
			if step.Script == "" {
				errs = append(errs, ValidationError{
					Level:   Error,
					Message: fmt.Sprintf("step %d ('%s') of build configuration '%s' has an empty script", i+1, step.Name, bt.Id),
				})
			}
		}
		if bt.ExecutionTimeoutMin < 0 {
			errs = append(errs, ValidationError{
				Level:   Error,
				Message: fmt.Sprintf("build configuration '%s' has a negative execution timeout", bt.Id),
			})
		}
	}
	return errs
}

func validateTriggers(p model.Project) ValidationErrors {
	errs := ValidationErrors{}
	for _, bt := range p.AllBuildTypes() {
		for _, trigger := range bt.Triggers {
			if err := trigger.Validate(); err != nil {
				errs = append(errs, ValidationError{
					Level:   Error,
					Message: fmt.Sprintf("trigger of build configuration '%s' is invalid: %s", bt.Id, err.Error()),
				})
				continue
			}
			if !trigger.Enabled {
				errs = append(errs, ValidationError{
					Level:   Warning,
					Message: fmt.Sprintf("build configuration '%s' has a disabled trigger", bt.Id),
				})
			}
			monthDays, _ := trigger.MonthDays()
			if !trigger.EveryDay() && len(monthDays) < 31 {
				errs = append(errs, ValidationError{
					Level:   Warning,
					Message: fmt.Sprintf("trigger of build configuration '%s' restricts both days of the week and days of the month; it fires when either matches", bt.Id),
				})
			}
		}
	}
	return errs
}

// A nightly project with no scheduled build never runs on its own.
func validateNightlySchedules(p model.Project) ValidationErrors {
	errs := ValidationErrors{}
	_ = p.Walk(func(_ []string, proj model.Project) error {
		if !strings.HasSuffix(proj.Id, "_"+tcgen.NightlyTestsProjectId) || len(proj.BuildTypes) == 0 {
			return nil
		}
		for _, bt := range proj.BuildTypes {
			if len(bt.Triggers) > 0 {
				return nil
			}
		}
		errs = append(errs, ValidationError{
			Level:   Warning,
			Message: fmt.Sprintf("nightly project '%s' has no triggered build configurations", proj.Id),
		})
		return nil
	})
	return errs
}

// Locks must name a shared resource declared on an enclosing project. When
// no enclosing project declares any resource the tree was generated without
// its root, so unknown locks are only warnings.
func validateLocks(p model.Project) ValidationErrors {
	errs := ValidationErrors{}
	declared := map[string][]string{}
	_ = p.Walk(func(path []string, proj model.Project) error {
		for _, r := range proj.SharedResources {
			declared[proj.Id] = append(declared[proj.Id], r.Name)
		}

		var available []string
		for _, id := range append(append([]string{}, path...), proj.Id) {
			available = append(available, declared[id]...)
		}

		for _, bt := range proj.BuildTypes {
			for _, lock := range bt.Locks {
				if lock.Mode != model.LockRead && lock.Mode != model.LockWrite {
					errs = append(errs, ValidationError{
						Level:   Error,
						Message: fmt.Sprintf("lock on '%s' in build configuration '%s' has invalid mode '%s'", lock.Resource, bt.Id, lock.Mode),
					})
				}
				if util.StringSliceContains(available, lock.Resource) {
					continue
				}
				level := Error
				if len(available) == 0 {
					level = Warning
				}
				errs = append(errs, ValidationError{
					Level:   level,
					Message: fmt.Sprintf("build configuration '%s' locks shared resource '%s' which is not declared on any enclosing project", bt.Id, lock.Resource),
				})
			}
		}
		return nil
	})
	return errs
}

func validateReadOnlySettings(p model.Project) ValidationErrors {
	if p.Params.IsReadOnly() {
		return nil
	}
	return ValidationErrors{{
		Level:   Warning,
		Message: fmt.Sprintf("project '%s' does not apply read-only settings; changes made in the UI will diverge from the generated configuration", p.Id),
	}}
}
