package generator

import (
	"encoding/json"

	"github.com/evergreen-ci/tcgen/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML      Format = "yaml"
	FormatJSON      Format = "json"
	FormatEvergreen Format = "evergreen"
	FormatKotlin    Format = "kotlin"
)

// Formats lists every output format Render supports.
var Formats = []Format{FormatYAML, FormatJSON, FormatEvergreen, FormatKotlin}

func (f Format) Validate() error {
	for _, valid := range Formats {
		if f == valid {
			return nil
		}
	}
	return errors.Errorf("unsupported output format '%s'", f)
}

// Render serializes the project tree in the given format.
func Render(p model.Project, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(p)
		return out, errors.Wrap(err, "marshalling project to YAML")
	case FormatJSON:
		out, err := json.MarshalIndent(p, "", "  ")
		return out, errors.Wrap(err, "marshalling project to JSON")
	case FormatEvergreen:
		conf, err := Evergreen(p, EvergreenOptions{})
		if err != nil {
			return nil, errors.Wrap(err, "generating evergreen configuration")
		}
		out, err := json.MarshalIndent(conf, "", "  ")
		return out, errors.Wrap(err, "marshalling evergreen configuration")
	case FormatKotlin:
		out, err := Kotlin(p)
		return out, errors.Wrap(err, "generating Kotlin DSL")
	default:
		return nil, errors.Errorf("unsupported output format '%s'", format)
	}
}
