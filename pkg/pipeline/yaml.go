package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadFromYAML loads a YAML document following the JSON schema.
func (p *Pipeline) LoadFromYAML(data []byte) error {
	doc, err := yamlToJSON(data)
	if err != nil {
		p.Clear()
		err = newError(ParseError, "", err)
		p.logger.Error("Failed to load pipeline.", "format", "yaml", "error", err)

		return err
	}

	return p.LoadFromJSON(doc)
}

// LoadFromYAMLFile reads a YAML document from path and loads it.
func (p *Pipeline) LoadFromYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		p.Clear()
		err = newError(ParseError, "", errors.Wrapf(err, "unable to read pipeline file '%s'", path))
		p.logger.Error("Cannot open pipeline file.", "path", path, "error", err)

		return err
	}

	return p.LoadFromYAML(data)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse yaml document")
	}

	out, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert yaml document")
	}

	return out, nil
}

// normalizeYAML turns the maps with non string keys into JSON objects.
func normalizeYAML(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeYAML(item)
		}

		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}

		return out
	case []any:
		for i := range v {
			v[i] = normalizeYAML(v[i])
		}

		return v
	default:
		return node
	}
}
