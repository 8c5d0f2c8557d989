package pipeline

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// extractVariables returns metadata.variables as strings.
// Numbers keep their literal form, booleans become "true" or "false",
// other values are ignored.
func extractVariables(metadata json.RawMessage) map[string]string {
	var meta map[string]json.RawMessage
	if json.Unmarshal(metadata, &meta) != nil {
		return nil
	}
	var raw map[string]json.RawMessage
	if json.Unmarshal(meta["variables"], &raw) != nil {
		return nil
	}

	vars := make(map[string]string, len(raw))
	for name, value := range raw {
		switch c := firstByte(value); {
		case c == '"':
			var s string
			if json.Unmarshal(value, &s) == nil {
				vars[name] = s
			}
		case c == 't' || c == 'f':
			vars[name] = string(bytes.TrimSpace(value))
		case isNumber(value):
			vars[name] = string(bytes.TrimSpace(value))
		}
	}

	return vars
}

// substituteVariables replaces ${name} in every string of raw.
func substituteVariables(raw json.RawMessage, vars map[string]string, missing func(name string)) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tree any
	err := dec.Decode(&tree)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode json")
	}

	out, err := json.Marshal(substitute(tree, vars, missing))
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode json")
	}

	return out, nil
}

func substitute(node any, vars map[string]string, missing func(name string)) any {
	switch v := node.(type) {
	case string:
		return expand(v, vars, missing)
	case []any:
		for i := range v {
			v[i] = substitute(v[i], vars, missing)
		}

		return v
	case map[string]any:
		for k := range v {
			v[k] = substitute(v[k], vars, missing)
		}

		return v
	default:
		return node
	}
}

// expand replaces the ${name} references of s. Unknown names are kept as is,
// an unterminated reference ends the expansion. Substituted values are not
// expanded again.
func expand(s string, vars map[string]string, missing func(name string)) string {
	if !strings.Contains(s, "${") {
		return s
	}

	var sb strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start+2:], '}')
		if end < 0 {
			break
		}
		end += start + 2

		name := s[start+2 : end]
		sb.WriteString(s[:start])
		if value, ok := vars[name]; ok {
			sb.WriteString(value)
		} else {
			if missing != nil {
				missing(name)
			}
			sb.WriteString(s[start : end+1])
		}
		s = s[end+1:]
	}
	sb.WriteString(s)

	return sb.String()
}
