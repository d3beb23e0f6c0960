package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/evergreen-ci/tcgen/model"
	"github.com/pkg/errors"
)

// kotlinDSLVersion is the TeamCity DSL version settings.kts declares.
const kotlinDSLVersion = "2024.03"

const kotlinTemplate = `// Generated by tcgen. Do not edit.

import jetbrains.buildServer.configs.kotlin.*
import jetbrains.buildServer.configs.kotlin.buildFeatures.sharedResources
import jetbrains.buildServer.configs.kotlin.buildSteps.script
import jetbrains.buildServer.configs.kotlin.triggers.schedule
import jetbrains.buildServer.configs.kotlin.vcs.GitVcsRoot

version = {{ kstr .Version }}

project({{ .Root.Id }})
{{- range .Projects }}

object {{ .Id }} : Project({
    id({{ kstr .Id }})
    name = {{ kstr .Name }}
{{- if .Description }}
    description = {{ kstr .Description }}
{{- end }}
{{- range .VCSRoots }}
    vcsRoot({{ .Id }})
{{- end }}
{{- range .SharedResources }}
    features {
        sharedResource {
            id = {{ kstr .Id }}
            name = {{ kstr .Name }}
            enabled = true
            resourceType = {{ if .Quota }}quoted({{ .Quota }}){{ else }}infinite(){{ end }}
        }
    }
{{- end }}
{{- range .SubProjects }}
    subProject({{ .Id }})
{{- end }}
{{- range .BuildTypes }}
    buildType({{ .Id }})
{{- end }}
{{- template "params" .Params }}
})
{{- end }}
{{- range .BuildTypes }}

object {{ .Id }} : BuildType({
    id({{ kstr .Id }})
    name = {{ kstr .Name }}
{{- if .Description }}
    description = {{ kstr .Description }}
{{- end }}
{{- if .ArtifactRules }}
    artifactRules = {{ kstr .ArtifactRules }}
{{- end }}

    vcs {
        root({{ .VCSRoot.Id }})
        cleanCheckout = true
    }

    steps {
{{- range .Steps }}
        script {
            name = {{ kstr .Name }}
{{- if .WorkingDir }}
            workingDir = {{ kstr .WorkingDir }}
{{- end }}
            scriptContent = {{ kstr .Script }}
        }
{{- end }}
    }
{{- template "params" .Params }}
{{- if .Triggers }}

    triggers {
{{- range .Triggers }}
        schedule {
            schedulingPolicy = cron {
                hours = {{ kstr (print .StartHour) }}
                dayOfWeek = {{ kstr .DaysOfWeek }}
                dayOfMonth = {{ kstr .DaysOfMonth }}
                timezone = {{ kstr .Timezone }}
            }
            branchFilter = {{ kstr .BranchFilter }}
            triggerBuild = always()
            withPendingChangesOnly = false
            enabled = {{ .Enabled }}
        }
{{- end }}
    }
{{- end }}
{{- if .Locks }}

    features {
        sharedResources {
{{- range .Locks }}
            {{ if eq .Mode "write" }}writeLock{{ else }}readLock{{ end }}({{ kstr .Resource }})
{{- end }}
        }
    }
{{- end }}
{{- if .ExecutionTimeoutMin }}

    failureConditions {
        executionTimeoutMin = {{ .ExecutionTimeoutMin }}
    }
{{- end }}
})
{{- end }}
{{- range .VCSRoots }}

object {{ .Id }} : GitVcsRoot({
    name = {{ kstr .Name }}
    url = {{ kstr .URL }}
    branch = {{ kstr .Branch }}
    branchSpec = {{ kstr .BranchSpec }}
})
{{- end }}
{{ define "paramSpec" }}
{{- if .Description }}, description = {{ kstr .Description }}{{ end }}
{{- if eq .Kind "hidden" }}, display = ParameterDisplay.HIDDEN{{ end }}
{{- if .ReadOnly }}, readOnly = true{{ end }}
{{- end }}
{{- define "params" }}
{{- if . }}

    params {
{{- range . }}
{{- if eq .Kind "password" }}
        password({{ kstr .Name }}, {{ kstr .Value }}{{ template "paramSpec" . }})
{{- else }}
        text({{ kstr .Name }}, {{ kstr .Value }}{{ template "paramSpec" . }})
{{- end }}
{{- end }}
    }
{{- end }}
{{- end }}`

var kotlinTmpl = template.Must(template.New("settings.kts").Funcs(template.FuncMap{
	"kstr": kotlinString,
}).Parse(kotlinTemplate))

type kotlinData struct {
	Version    string
	Root       model.Project
	Projects   []model.Project
	BuildTypes []model.BuildType
	VCSRoots   []model.VCSRoot
}

// Kotlin renders the project tree as a TeamCity settings.kts file. Every
// project, build configuration and VCS root becomes a top level object
// named after its id.
func Kotlin(p model.Project) ([]byte, error) {
	data := kotlinData{
		Version: kotlinDSLVersion,
		Root:    p,
	}

	seenRoots := map[string]bool{}
	addRoot := func(root model.VCSRoot) {
		if root.IsZero() || seenRoots[root.Id] {
			return
		}
		seenRoots[root.Id] = true
		data.VCSRoots = append(data.VCSRoots, root)
	}

	_ = p.Walk(func(_ []string, proj model.Project) error {
		data.Projects = append(data.Projects, proj)
		for _, root := range proj.VCSRoots {
			addRoot(root)
		}
		for _, bt := range proj.BuildTypes {
			data.BuildTypes = append(data.BuildTypes, bt)
			addRoot(bt.VCSRoot)
		}
		return nil
	})

	var buf bytes.Buffer
	if err := kotlinTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing Kotlin template")
	}
	return buf.Bytes(), nil
}

// kotlinString quotes s as a Kotlin string literal. Dollar signs are escaped
// so scripts are not subject to string templating. Kotlin only knows the
// \t \b \n \r escapes, so other control characters use \uXXXX.
func kotlinString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '$':
			b.WriteString(`\$`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
