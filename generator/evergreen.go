package generator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/evergreen-ci/shrub"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const (
	defaultDistro    = "ubuntu2204-small"
	sourceDirectory  = "src"
	fetchSourceFunc  = "fetch-source"
	nightlyTaskTag   = "nightly"
	checkoutDirParam = "teamcity.build.checkoutDir"
)

// paramRefPattern matches a TeamCity parameter reference such as
// %env.GOOGLE_REGION%.
var paramRefPattern = regexp.MustCompile(`%([A-Za-z][A-Za-z0-9_.]*)%`)

type EvergreenOptions struct {
	// Distro is the distro every variant runs on.
	Distro string
}

// Evergreen translates a project tree into an evergreen configuration. Every
// project with build configurations becomes a variant and every build
// configuration becomes a task. Nightly triggers become cron batchtimes and
// builds without one are left inactive. Parameters are inherited from enclosing
// projects as TeamCity does, and password parameters are read from project
// expansions rather than written into the configuration.
func Evergreen(p model.Project, opts EvergreenOptions) (*shrub.Configuration, error) {
	if opts.Distro == "" {
		opts.Distro = defaultDistro
	}

	conf, err := shrub.BuildConfiguration(func(c *shrub.Configuration) {
		c.CommandType = "test"
		c.Function(fetchSourceFunc).Append(&shrub.CommandDefinition{
			CommandName:   shrub.CmdGetProject{}.Name(),
			ExecutionType: "setup",
			Params: map[string]interface{}{
				"directory": sourceDirectory,
				"token":     "${github_token}",
			},
		})

		walkInherited(p, nil, func(proj model.Project, inherited model.ParamBlock) {
			if len(proj.BuildTypes) == 0 {
				return
			}

			variant := c.Variant(strings.ToLower(proj.Id)).
				DisplayName(proj.Name).
				RunOn(opts.Distro).
				Expansion("teamcity_project_id", proj.Id)

			for _, bt := range proj.BuildTypes {
				params := inherited.Merge(bt.Params)
				task := c.Task(strings.ToLower(bt.Id)).Function(fetchSourceFunc)
				for _, step := range bt.Steps {
					task.Command(shrub.CmdExecShell{
						Script:           shellScript(step, params),
						WorkingDirectory: stepDirectory(step),
					})
				}
				if files := artifactFiles(bt.ArtifactRules); len(files) > 0 {
					task.Command(shrub.CmdAttachArtifacts{Optional: true, Files: files})
				}
				if bt.ExecutionTimeoutMin > 0 {
					task.ExecTimeout(bt.ExecutionTimeoutMin * 60)
				}

				spec := shrub.TaskSpec{Name: task.Name}
				cron, err := evergreenCron(bt)
				if err != nil {
					// BuildConfiguration recovers this into its error.
					panic(err)
				}
				if cron != "" {
					task.Tag(nightlyTaskTag)
					spec.SetCronBatchtime(cron)
				} else {
					// Builds without a schedule only run when requested.
					activate := false
					spec.SetActivate(&activate)
				}
				variant.TaskSpec(spec)
			}
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "building evergreen configuration")
	}

	grip.Debug(message.Fields{
		"message":  "generated evergreen configuration",
		"project":  p.Id,
		"variants": len(conf.Variants),
		"tasks":    len(conf.Tasks),
	})

	return conf, nil
}

// evergreenCron returns the cron batchtime of the build configuration's
// first enabled trigger, or "" when it has none. Evergreen runs a task on
// one schedule only, so further triggers are dropped.
func evergreenCron(bt model.BuildType) (string, error) {
	var enabled []model.NightlyTriggerConfiguration
	for _, trigger := range bt.Triggers {
		if trigger.Enabled {
			enabled = append(enabled, trigger)
		}
	}
	if len(enabled) == 0 {
		return "", nil
	}

	grip.WarningWhen(len(enabled) > 1, message.Fields{
		"message":  "evergreen tasks have one schedule, dropping extra triggers",
		"build":    bt.Id,
		"triggers": len(enabled),
	})

	spec, err := enabled[0].CronSpec()
	if err != nil {
		return "", errors.Wrapf(err, "converting trigger of build configuration '%s'", bt.Id)
	}
	return spec, nil
}

// walkInherited visits every project with the parameters it inherits from
// its ancestors.
func walkInherited(p model.Project, inherited model.ParamBlock, fn func(model.Project, model.ParamBlock)) {
	params := inherited.Merge(p.Params)
	fn(p, params)
	for _, sub := range p.SubProjects {
		walkInherited(sub, params, fn)
	}
}

func stepDirectory(step model.BuildStep) string {
	if step.WorkingDir == "" {
		return sourceDirectory
	}
	return sourceDirectory + "/" + strings.TrimPrefix(step.WorkingDir, "./")
}

// shellScript exports the build parameters as shell variables ahead of the
// step's script, then rewrites TeamCity parameter references to refer to
// them.
func shellScript(step model.BuildStep, params model.ParamBlock) string {
	exports := make([]string, 0, len(params))
	for _, p := range params {
		if strings.HasPrefix(p.Name, "teamcity.") {
			continue
		}
		name := shellName(p.Name)
		value := shellQuote(rewriteRefs(p.Value))
		if p.Kind == model.ParamPassword {
			value = fmt.Sprintf("'${%s}'", strings.ToLower(name))
		}
		exports = append(exports, fmt.Sprintf("export %s=%s", name, value))
	}
	sort.Strings(exports)

	script := rewriteRefs(step.Script)
	var lines []string
	if strings.HasPrefix(script, "#!") {
		shebang, rest, _ := strings.Cut(script, "\n")
		lines = append(lines, shebang)
		script = rest
	}
	lines = append(lines, exports...)
	return strings.Join(append(lines, script), "\n")
}

func rewriteRefs(s string) string {
	return paramRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := strings.Trim(ref, "%")
		switch name {
		case checkoutDirParam, "system." + checkoutDirParam:
			return "${workdir}/" + sourceDirectory
		}
		return "$" + shellName(name)
	})
}

// shellName maps a TeamCity parameter name to a shell variable name.
// Environment parameters lose their prefix.
func shellName(name string) string {
	name = strings.TrimPrefix(name, "env.")
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

func shellQuote(s string) string {
	return "'" + strings.Replace(s, "'", `'\''`, -1) + "'"
}

func artifactFiles(rules string) []string {
	var files []string
	for _, rule := range strings.Split(rules, "\n") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		for _, prefix := range []string{"%" + checkoutDirParam + "%/", "%system." + checkoutDirParam + "%/"} {
			rule = strings.TrimPrefix(rule, prefix)
		}
		files = append(files, sourceDirectory+"/"+rule)
	}
	return files
}
