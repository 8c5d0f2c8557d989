package drawer

import (
	"fmt"
	"html"
	"io"
	"os"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/measure"
)

// DOTDrawer is a drawer that writes the pipeline graph in the DOT language.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	steps       map[string]struct{}
	dotFileName string
	attributes  map[string]string
}

// NewDOTDrawer creates a new DOT drawer writing to dotFileName.
func NewDOTDrawer(dotFileName string, options ...func(*DOTDrawer)) *DOTDrawer {
	d := &DOTDrawer{
		dotFileName: dotFileName,
		attributes:  make(map[string]string),
	}
	for _, option := range options {
		option(d)
	}
	d.Reset()

	return d
}

// GraphAttribute sets an attribute of the whole graph, such as rankdir.
func GraphAttribute(key, value string) func(*DOTDrawer) {
	return func(d *DOTDrawer) {
		d.attributes[key] = value
	}
}

// Reset drops every step and link.
func (d *DOTDrawer) Reset() {
	d.graph = graph.New(graph.StringHash, graph.Directed())
	d.steps = make(map[string]struct{})
}

// AddStep adds a step to the pipeline graph.
func (d *DOTDrawer) AddStep(stepID string, attributes map[string]string) error {
	options := make([]func(*graph.VertexProperties), 0, len(attributes))
	for key, value := range attributes {
		options = append(options, graph.VertexAttribute(key, value))
	}

	err := d.graph.AddVertex(stepID, options...)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", stepID)
	}

	d.steps[stepID] = struct{}{}

	return nil
}

// AddLink adds a link between parent and child steps.
func (d *DOTDrawer) AddLink(parentStepID, childStepID string) error {
	err := d.graph.AddEdge(parentStepID, childStepID)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentStepID, childStepID)
	}

	return nil
}

// Draw creates a DOT file with the pipeline graph.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = d.Write(file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.dotFileName)
	}

	return nil
}

// Write renders the pipeline graph to wrt.
func (d *DOTDrawer) Write(wrt io.Writer) error {
	desc, err := d.generateDOT()
	if err != nil {
		return errors.Wrap(err, "unable to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

// SetTotalTime sets the total time for the step.
func (d *DOTDrawer) SetTotalTime(stepID string, total time.Duration) error {
	_, properties, err := d.graph.VertexWithProperties(stepID)
	if err != nil {
		return errors.Wrapf(err, "unable to get %s vertex properties", stepID)
	}

	properties.Attributes["xlabel"] = "total: " + measure.Round(total).String()

	return nil
}

const maxRGB = 240

// AddMeasure labels every step with its average duration and colours it
// from blue for the fastest to red for the slowest.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	metrics := make(map[string]measure.Metric)
	sortedElapsed := []time.Duration{}

	for stepID, mt := range msr.AllMetrics() {
		if _, ok := d.steps[stepID]; !ok {
			continue
		}
		metrics[stepID] = mt

		avg := mt.AVGDuration()
		if avg == 0 || mt.GetTotalDuration() > 0 {
			continue
		}
		sortedElapsed = append(sortedElapsed, avg)
	}

	if len(sortedElapsed) == 0 {
		return nil
	}

	slices.Sort(sortedElapsed)
	minValue := sortedElapsed[0]
	maxValue := sortedElapsed[len(sortedElapsed)-1]

	for stepID, mt := range metrics {
		_, properties, err := d.graph.VertexWithProperties(stepID)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		avg := mt.AVGDuration()
		if avg == 0 || mt.GetTotalDuration() > 0 {
			continue
		}

		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		properties.Attributes["color"] = colour.ToHEX().String()
		properties.Attributes["xlabel"] = avg.String()
		if failures := mt.Failures(); failures > 0 {
			properties.Attributes["xlabel"] += fmt.Sprintf(", failures: %d", failures)
		}
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{quote $v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{quote .Source}}" {{if .Target}}{{$.EdgeOperator}} "{{quote .Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{quote $v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{quote $v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

// quote escapes s for a double-quoted DOT string.
var quote = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

// generateDOT lists the vertices and their edges sorted by name.
func (d *DOTDrawer) generateDOT() (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   d.attributes,
		EdgeOperator: "->",
		Statements:   make([]statement, 0),
	}

	adjacencyMap, err := d.graph.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	vertices := make([]string, 0, len(adjacencyMap))
	for vertex := range adjacencyMap {
		vertices = append(vertices, vertex)
	}
	slices.Sort(vertices)

	for _, vertex := range vertices {
		_, sourceProperties, err := d.graph.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		sourceAttributes := make(map[string]string, len(sourceProperties.Attributes))
		htmlAttributes := make(map[string]string)
		for key, value := range sourceProperties.Attributes {
			if key == "xlabel" {
				htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, html.EscapeString(vertex), html.EscapeString(value))

				continue
			}
			sourceAttributes[key] = value
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		})

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}
		slices.Sort(targets)

		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Funcs(template.FuncMap{"quote": quote}).Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
