package tcgen

import (
	"strings"

	"github.com/pkg/errors"
)

type KeyValuePair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

type KeyValuePairSlice []KeyValuePair

// ParseKeyValuePairs parses KEY=VALUE strings. Values may contain '='.
func ParseKeyValuePairs(in []string) (KeyValuePairSlice, error) {
	out := KeyValuePairSlice{}
	seen := map[string]bool{}
	for _, raw := range in {
		idx := strings.Index(raw, "=")
		if idx <= 0 {
			return nil, errors.Errorf("'%s' is not a KEY=VALUE pair", raw)
		}
		key := strings.TrimSpace(raw[:idx])
		if key == "" {
			return nil, errors.Errorf("'%s' has an empty key", raw)
		}
		if seen[key] {
			return nil, errors.Errorf("key '%s' is duplicated", key)
		}
		seen[key] = true
		out = append(out, KeyValuePair{Key: key, Value: raw[idx+1:]})
	}
	return out, nil
}

// Nested splits dotted keys into nested maps, so that "ga.project=x"
// becomes {"ga": {"project": "x"}}. A key that is both a value and a parent
// keeps the last one written.
func (in KeyValuePairSlice) Nested() map[string]interface{} {
	out := map[string]interface{}{}
	for _, pair := range in {
		parts := strings.Split(pair.Key, ".")
		cur := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]interface{})
			if !ok {
				next = map[string]interface{}{}
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = pair.Value
	}
	return out
}
