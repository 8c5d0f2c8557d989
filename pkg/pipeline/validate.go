package pipeline

import "fmt"

// Validate returns every problem of the parsed steps: duplicated IDs,
// transforms missing from the catalog, empty keys and negative phases.
func (p *Pipeline) Validate() []string {
	var problems []string

	counts := make(map[string]int, len(p.steps))
	order := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		if counts[step.StepID] == 0 {
			order = append(order, step.StepID)
		}
		counts[step.StepID]++
	}
	for _, id := range order {
		if counts[id] > 1 {
			problems = append(problems, fmt.Sprintf("Duplicate step ID: %s (%d occurrences)", id, counts[id]))
		}
	}

	for i, step := range p.steps {
		prefix := fmt.Sprintf("Step %d (%s): ", i, step.StepID)

		if p.catalog.FindByName(step.TransformName) == nil {
			problems = append(problems, prefix+fmt.Sprintf("Transform '%s' not found in registry", step.TransformName))
		}
		if step.InputKey == "" {
			problems = append(problems, prefix+"Input key cannot be empty")
		}
		if step.StepID == "" {
			problems = append(problems, prefix+"Step ID cannot be empty")
		}
		if step.Phase < 0 {
			problems = append(problems, prefix+"Phase number cannot be negative")
		}
	}

	return problems
}
