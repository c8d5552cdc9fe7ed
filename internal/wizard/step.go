// Package wizard drives the site-building flow: the step state machine, the
// generation calls made while moving through it, live topic suggestions and
// the live view that renders each step.
package wizard

import "fmt"

// Step is a position in the wizard flow.
type Step int

// Wizard steps in flow order.
const (
	StepLanding Step = iota
	StepTopic
	StepGoals
	StepName
	StepStructure
	StepPalette
	StepFonts
	StepDashboard
)

// questionSteps is the number of steps shown with a progress counter.
const questionSteps = int(StepFonts - StepTopic + 1)

var stepNames = [...]string{
	StepLanding:   "landing",
	StepTopic:     "topic",
	StepGoals:     "goals",
	StepName:      "name",
	StepStructure: "structure",
	StepPalette:   "palette",
	StepFonts:     "fonts",
	StepDashboard: "dashboard",
}

// Valid reports whether s is a defined step.
func (s Step) Valid() bool {
	return s >= StepLanding && s <= StepDashboard
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// ParseStep maps a step name back to its value.
func ParseStep(name string) (Step, bool) {
	for i, n := range stepNames {
		if n == name {
			return Step(i), true
		}
	}
	return 0, false
}

// ordinal is the 1-based progress position of a question step.
func (s Step) ordinal() int {
	return int(s - StepTopic + 1)
}
