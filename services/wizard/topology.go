package wizard

import "bizhub/models"

// transition is one guarded edge of the step graph. Rules for the same source
// step are evaluated in order and the first matching guard wins.
type transition struct {
	from  models.WizardStep
	guard func(t models.Topology) bool
	to    models.WizardStep
}

func always(models.Topology) bool { return true }

// transitions is the only description of the step graph. Forward navigation
// reads it directly and backward navigation walks the path it produces.
var transitions = []transition{
	{models.StepServiceOverview, func(t models.Topology) bool { return t.HasItems }, models.StepServiceItems},
	{models.StepServiceOverview, func(t models.Topology) bool { return t.HasExtras }, models.StepServiceExtras},
	{models.StepServiceOverview, func(t models.Topology) bool { return t.HasRequirements || t.HasQuestions }, models.StepRequirements},
	{models.StepServiceOverview, always, models.StepQuestions},

	{models.StepServiceItems, func(t models.Topology) bool { return t.HasExtras }, models.StepServiceExtras},
	{models.StepServiceItems, always, models.StepRequirements},

	{models.StepServiceExtras, always, models.StepRequirements},

	{models.StepRequirements, always, models.StepQuestions},

	{models.StepQuestions, func(t models.Topology) bool { return !t.ActiveBooking }, models.StepCustomerDetails},
	{models.StepQuestions, func(t models.Topology) bool { return t.EventCount > 1 }, models.StepEventSelection},
	// A single event is auto-selected; no events means booking without an event window.
	{models.StepQuestions, always, models.StepDateTimeSelection},

	{models.StepEventSelection, always, models.StepDateTimeSelection},

	{models.StepDateTimeSelection, always, models.StepCustomerDetails},
}

// NextStep returns the step following from under topology t. The last step
// has no successor and returns itself with ok == false.
func NextStep(from models.WizardStep, t models.Topology) (models.WizardStep, bool) {
	for _, tr := range transitions {
		if tr.from == from && tr.guard(t) {
			return tr.to, true
		}
	}
	return from, false
}

// Path is the full forward sequence of steps for topology t.
func Path(t models.Topology) []models.WizardStep {
	path := []models.WizardStep{models.StepServiceOverview}
	cur := models.StepServiceOverview
	for {
		next, ok := NextStep(cur, t)
		if !ok {
			return path
		}
		path = append(path, next)
		cur = next
	}
}

// PreviousStep returns the step before cur on the path of t. The overview has
// no predecessor and returns itself with ok == false.
func PreviousStep(cur models.WizardStep, t models.Topology) (models.WizardStep, bool) {
	path := Path(t)
	for i, s := range path {
		if s == cur && i > 0 {
			return path[i-1], true
		}
	}
	return cur, false
}

// TopologyOf derives the step graph inputs from a catalog service and its events.
func TopologyOf(svc models.Service, events []models.Event) models.Topology {
	t := models.Topology{
		HasItems:        svc.HasItems && len(svc.Items) > 0,
		HasExtras:       svc.HasExtras && len(svc.Extras) > 0,
		HasRequirements: len(svc.Requirements) > 0,
		HasQuestions:    len(svc.Questions) > 0,
		ActiveBooking:   svc.ActiveBooking,
	}
	if svc.ActiveBooking {
		t.EventCount = len(events)
	}
	return t
}

// skippable lists steps the customer may pass without answering. Requirements
// and questions are further restricted to services with nothing required.
var skippable = map[models.WizardStep]bool{
	models.StepServiceItems:  true,
	models.StepServiceExtras: true,
	models.StepRequirements:  true,
	models.StepQuestions:     true,
}
