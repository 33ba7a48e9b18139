package texmath

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

var whitespaces = regexp.MustCompile("[ \n\t\r]+")

var errKeyValue = errors.New("key-value pair must have a key and a value")

// KeyValue parses key-value parameters in this format: key=value, key=value, for example as used by \data.
// Keys are lower-cased, surrounding spaces are dropped.
func KeyValue(raw string) (map[string]string, error) {
	kv := map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return kv, nil
	}

	parts := strings.Split(raw, ",")
	for _, part := range parts {
		n := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(n) != 2 || strings.TrimSpace(n[0]) == "" {
			return nil, errKeyValue
		}

		key := whitespaces.ReplaceAllString(strings.TrimSpace(n[0]), "-")
		kv[strings.ToLower(key)] = strings.TrimSpace(n[1])
	}

	return kv, nil
}

// sortedKeys returns keys of the map in a stable order, attributes are rendered in this order
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}
