package pipeline

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

// LoadFromJSON replaces the pipeline content with the given document.
// On failure the pipeline is left empty.
func (p *Pipeline) LoadFromJSON(data []byte) error {
	p.Clear()

	err := p.load(data)
	if err != nil {
		p.Clear()
		p.logger.Error("Failed to load pipeline.", "error", err)

		return err
	}
	p.logger.Info("Pipeline loaded.", "steps", len(p.steps))

	return nil
}

// LoadFromJSONFile reads a JSON document from path and loads it.
func (p *Pipeline) LoadFromJSONFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		p.Clear()
		err = newError(ParseError, "", errors.Wrapf(err, "unable to read pipeline file '%s'", path))
		p.logger.Error("Cannot open pipeline file.", "path", path, "error", err)

		return err
	}

	return p.LoadFromJSON(data)
}

func (p *Pipeline) load(data []byte) error {
	var doc map[string]json.RawMessage
	err := json.Unmarshal(data, &doc)
	if err != nil {
		return newError(ParseError, "", errors.Wrap(err, "unable to parse pipeline document"))
	}

	if raw, ok := doc["metadata"]; ok && firstByte(raw) != 'n' {
		p.metadata = append(json.RawMessage(nil), raw...)
	}

	rawSteps, ok := doc["steps"]
	if !ok || firstByte(rawSteps) != '[' {
		return newError(ParseError, "", ErrStepsMissing)
	}

	if p.substituteVariables {
		rawSteps, err = substituteVariables(rawSteps, extractVariables(p.metadata), func(name string) {
			p.logger.Warn("Variable not found in metadata.variables.", "variable", name)
		})
		if err != nil {
			return newError(ParseError, "", errors.Wrap(err, "unable to substitute variables"))
		}
	}

	var items []json.RawMessage
	err = json.Unmarshal(rawSteps, &items)
	if err != nil {
		return newError(ParseError, "", errors.Wrap(err, "unable to parse steps"))
	}

	steps := make([]model.Step, 0, len(items))
	for i, item := range items {
		step, err := parseStep(item)
		if err != nil {
			return newError(ParseError, "", errors.Wrapf(err, "failed to parse step %d", i))
		}
		steps = append(steps, step)
	}
	p.steps = steps

	if problems := p.Validate(); len(problems) > 0 {
		return &Error{Kind: ValidationError, Problems: problems, Err: ErrValidation}
	}

	return nil
}

func parseStep(item json.RawMessage) (model.Step, error) {
	step := model.Step{
		Parameters: make(map[string]json.RawMessage),
		Enabled:    true,
	}

	var fields map[string]json.RawMessage
	if firstByte(item) != '{' {
		return step, errors.Wrap(ErrInvalidStep, "step must be an object")
	}
	err := json.Unmarshal(item, &fields)
	if err != nil {
		return step, errors.Wrap(err, "unable to decode step")
	}

	required := []struct {
		name string
		dst  *string
	}{
		{name: "step_id", dst: &step.StepID},
		{name: "transform_name", dst: &step.TransformName},
		{name: "input_key", dst: &step.InputKey},
	}
	for _, field := range required {
		raw, ok := fields[field.name]
		if !ok || !decodeString(raw, field.dst) {
			return step, errors.Wrapf(ErrInvalidStep, "'%s' is required and must be a string", field.name)
		}
	}

	if raw, ok := fields["output_key"]; ok {
		decodeString(raw, &step.OutputKey)
	}

	if raw, ok := fields["parameters"]; ok && firstByte(raw) != 'n' {
		if firstByte(raw) != '{' {
			return step, errors.Wrapf(ErrInvalidStep, "step '%s': 'parameters' must be an object", step.StepID)
		}
		err = json.Unmarshal(raw, &step.Parameters)
		if err != nil {
			return step, errors.Wrapf(err, "step '%s': unable to decode parameters", step.StepID)
		}
		for name, value := range step.Parameters {
			var buf bytes.Buffer
			if json.Compact(&buf, value) == nil {
				step.Parameters[name] = buf.Bytes()
			}
		}
	}

	if raw, ok := fields["phase"]; ok && isNumber(raw) {
		var num json.Number
		if json.Unmarshal(raw, &num) == nil {
			// Only integer literals are accepted, anything else keeps phase 0.
			if phase, err := num.Int64(); err == nil && int64(int(phase)) == phase {
				step.Phase = int(phase)
			}
		}
	}

	if raw, ok := fields["enabled"]; ok {
		var enabled bool
		if c := firstByte(raw); (c == 't' || c == 'f') && json.Unmarshal(raw, &enabled) == nil {
			step.Enabled = enabled
		}
	}

	if raw, ok := fields["description"]; ok {
		decodeString(raw, &step.Description)
	}

	if raw, ok := fields["tags"]; ok && firstByte(raw) == '[' {
		var tags []json.RawMessage
		if json.Unmarshal(raw, &tags) == nil {
			for _, rawTag := range tags {
				var tag string
				if decodeString(rawTag, &tag) {
					step.Tags = append(step.Tags, tag)
				}
			}
		}
	}

	return step, nil
}

// decodeString sets dst when raw is a JSON string.
func decodeString(raw json.RawMessage, dst *string) bool {
	if firstByte(raw) != '"' {
		return false
	}

	return json.Unmarshal(raw, dst) == nil
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}

	return trimmed[0]
}

func isNumber(raw json.RawMessage) bool {
	c := firstByte(raw)

	return c == '-' || (c >= '0' && c <= '9')
}
