package pipeline

import (
	"encoding/json"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// hclDocument is decoded first, the metadata variables are needed to
// evaluate the steps.
type hclDocument struct {
	Metadata cty.Value `hcl:"metadata,optional"`
	Remain   hcl.Body  `hcl:",remain"`
}

type hclSteps struct {
	Steps []hclStep `hcl:"step,block"`
}

type hclStep struct {
	ID            string    `hcl:"id,label"`
	TransformName string    `hcl:"transform_name"`
	InputKey      string    `hcl:"input_key"`
	OutputKey     *string   `hcl:"output_key,optional"`
	Parameters    cty.Value `hcl:"parameters,optional"`
	Phase         *int      `hcl:"phase,optional"`
	Enabled       *bool     `hcl:"enabled,optional"`
	Description   *string   `hcl:"description,optional"`
	Tags          []string  `hcl:"tags,optional"`
}

type hclJSONStep struct {
	StepID        string          `json:"step_id"`
	TransformName string          `json:"transform_name"`
	InputKey      string          `json:"input_key"`
	OutputKey     *string         `json:"output_key,omitempty"`
	Parameters    json.RawMessage `json:"parameters,omitempty"`
	Phase         *int            `json:"phase,omitempty"`
	Enabled       *bool           `json:"enabled,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

// LoadFromHCL loads an HCL document made of an optional metadata attribute
// and step blocks labelled with their ID:
//
//	metadata = {
//	  variables = { factor = 2 }
//	}
//
//	step "scale" {
//	  transform_name = "scale"
//	  input_key      = "raw"
//	  parameters     = { factor = var.factor }
//	}
//
// filename is only used in diagnostics.
func (p *Pipeline) LoadFromHCL(src []byte, filename string) error {
	doc, err := hclToJSON(src, filename)
	if err != nil {
		p.Clear()
		err = newError(ParseError, "", err)
		p.logger.Error("Failed to load pipeline.", "format", "hcl", "filename", filename, "error", err)

		return err
	}

	return p.LoadFromJSON(doc)
}

// LoadFromHCLFile reads an HCL document from path and loads it.
func (p *Pipeline) LoadFromHCLFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		p.Clear()
		err = newError(ParseError, "", errors.Wrapf(err, "unable to read pipeline file '%s'", path))
		p.logger.Error("Cannot open pipeline file.", "path", path, "error", err)

		return err
	}

	return p.LoadFromHCL(src, path)
}

func hclToJSON(src []byte, filename string) ([]byte, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "unable to parse HCL file '%s'", filename)
	}

	var doc hclDocument
	diags = gohcl.DecodeBody(file.Body, nil, &doc)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "unable to decode metadata of '%s'", filename)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": hclVariables(doc.Metadata)},
	}

	var steps hclSteps
	diags = gohcl.DecodeBody(doc.Remain, evalCtx, &steps)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "unable to decode steps of '%s'", filename)
	}

	out := struct {
		Metadata json.RawMessage `json:"metadata"`
		Steps    []hclJSONStep   `json:"steps"`
	}{
		Metadata: emptyObject(),
		Steps:    make([]hclJSONStep, 0, len(steps.Steps)),
	}

	if !doc.Metadata.IsNull() {
		raw, err := ctyjson.Marshal(doc.Metadata, doc.Metadata.Type())
		if err != nil {
			return nil, errors.Wrap(err, "unable to convert metadata")
		}
		out.Metadata = raw
	}

	for _, step := range steps.Steps {
		item := hclJSONStep{
			StepID:        step.ID,
			TransformName: step.TransformName,
			InputKey:      step.InputKey,
			OutputKey:     step.OutputKey,
			Phase:         step.Phase,
			Enabled:       step.Enabled,
			Description:   step.Description,
			Tags:          step.Tags,
		}
		if !step.Parameters.IsNull() {
			raw, err := ctyjson.Marshal(step.Parameters, step.Parameters.Type())
			if err != nil {
				return nil, errors.Wrapf(err, "unable to convert parameters of step '%s'", step.ID)
			}
			item.Parameters = raw
		}
		out.Steps = append(out.Steps, item)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode pipeline document")
	}

	return data, nil
}

// hclVariables returns metadata.variables, or an empty object.
func hclVariables(metadata cty.Value) cty.Value {
	if metadata.IsNull() || !metadata.IsKnown() {
		return cty.EmptyObjectVal
	}

	var vars cty.Value
	switch typ := metadata.Type(); {
	case typ.IsObjectType() && typ.HasAttribute("variables"):
		vars = metadata.GetAttr("variables")
	case typ.IsMapType() && metadata.HasIndex(cty.StringVal("variables")).True():
		vars = metadata.Index(cty.StringVal("variables"))
	default:
		return cty.EmptyObjectVal
	}
	if vars.IsNull() {
		return cty.EmptyObjectVal
	}

	return vars
}
