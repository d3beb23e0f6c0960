package util

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ReadYAMLFileStrict reads the named file and unmarshals it into data,
// rejecting keys that do not map to a field.
func ReadYAMLFileStrict(fn string, data interface{}) error {
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return errors.Errorf("file '%s' does not exist", fn)
	}

	contents, err := os.ReadFile(fn)
	if err != nil {
		return errors.Wrapf(err, "reading file '%s'", fn)
	}

	return errors.Wrap(UnmarshalYAMLStrict(contents, data), "parsing YAML")
}

// UnmarshalYAMLStrict unmarshals the YAML document in data into out. Unknown
// fields and duplicate keys are errors. An empty document leaves out
// unchanged.
func UnmarshalYAMLStrict(data []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}
