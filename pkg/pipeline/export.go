package pipeline

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type stepDocument struct {
	StepID        string                     `json:"step_id"`
	TransformName string                     `json:"transform_name"`
	InputKey      string                     `json:"input_key"`
	OutputKey     string                     `json:"output_key"`
	Parameters    map[string]json.RawMessage `json:"parameters"`
	Phase         int                        `json:"phase"`
	Enabled       bool                       `json:"enabled"`
	Description   string                     `json:"description,omitempty"`
	Tags          []string                   `json:"tags,omitempty"`
}

type document struct {
	Metadata json.RawMessage `json:"metadata"`
	Steps    []stepDocument  `json:"steps"`
}

func (p *Pipeline) document() document {
	doc := document{
		Metadata: p.metadata,
		Steps:    make([]stepDocument, 0, len(p.steps)),
	}
	if len(doc.Metadata) == 0 {
		doc.Metadata = emptyObject()
	}

	for _, step := range p.steps {
		params := step.Parameters
		if params == nil {
			params = map[string]json.RawMessage{}
		}
		doc.Steps = append(doc.Steps, stepDocument{
			StepID:        step.StepID,
			TransformName: step.TransformName,
			InputKey:      step.InputKey,
			OutputKey:     step.OutputKey,
			Parameters:    params,
			Phase:         step.Phase,
			Enabled:       step.Enabled,
			Description:   step.Description,
			Tags:          step.Tags,
		})
	}

	return doc
}

// ExportToJSON serializes the pipeline with a 2 space indentation.
// The output loads back into an equivalent pipeline.
func (p *Pipeline) ExportToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(p.document(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal pipeline")
	}

	return data, nil
}

// SaveToJSONFile writes ExportToJSON to path.
func (p *Pipeline) SaveToJSONFile(path string) error {
	data, err := p.ExportToJSON()
	if err != nil {
		p.logger.Error("Failed to export pipeline.", "path", path, "error", err)

		return err
	}

	err = os.WriteFile(path, append(data, '\n'), 0o644)
	if err != nil {
		p.logger.Error("Cannot create pipeline file.", "path", path, "error", err)

		return errors.Wrapf(err, "unable to write pipeline file '%s'", path)
	}

	return nil
}
