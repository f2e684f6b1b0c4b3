package wizard

import (
	"net/mail"
	"strings"
	"time"

	"bizhub/models"
)

// buildItems converts requested quantities into priced selections.
func buildItems(svc *models.Service, requested map[string]int) (map[string]models.SelectedItem, error) {
	agg := models.RequestAggregate{}
	for id, qty := range requested {
		item, ok := svc.ItemByID(id)
		if !ok {
			return nil, stepError(models.StepServiceItems, id, "unknown service item")
		}
		if qty < 0 {
			return nil, stepError(models.StepServiceItems, id, "quantity must not be negative")
		}
		agg.SetItemQuantity(id, item, qty)
	}
	if agg.Items == nil {
		agg.Items = map[string]models.SelectedItem{}
	}
	return agg.Items, nil
}

func buildExtras(svc *models.Service, requested map[string]int) (map[string]models.SelectedExtra, error) {
	agg := models.RequestAggregate{}
	for id, qty := range requested {
		extra, ok := svc.ExtraByID(id)
		if !ok {
			return nil, stepError(models.StepServiceExtras, id, "unknown extra")
		}
		if err := checkExtraQuantity(extra, qty); err != nil {
			return nil, err
		}
		agg.SetExtraQuantity(id, extra, qty)
	}
	if agg.Extras == nil {
		agg.Extras = map[string]models.SelectedExtra{}
	}
	return agg.Extras, nil
}

func checkExtraQuantity(extra models.Extra, qty int) error {
	if qty < 0 {
		return stepError(models.StepServiceExtras, extra.ID, "quantity must not be negative")
	}
	if extra.MaxQuantity > 0 && qty > extra.MaxQuantity {
		return stepError(models.StepServiceExtras, extra.ID, "at most %d allowed", extra.MaxQuantity)
	}
	return nil
}

func checkRequirements(svc *models.Service, confirmed map[string]bool) (map[string]bool, error) {
	out := make(map[string]bool, len(svc.Requirements))
	for _, req := range svc.Requirements {
		ok := confirmed[req.ID]
		if req.Required && !ok {
			return nil, stepError(models.StepRequirements, req.ID, "%q must be confirmed", req.Title)
		}
		out[req.ID] = ok
	}
	return out, nil
}

func checkQuestions(svc *models.Service, responses map[string]models.Answer) (map[string]models.Answer, error) {
	out := make(map[string]models.Answer, len(responses))
	for _, q := range svc.Questions {
		ans, ok := responses[q.ID]
		if !ok || ans.Empty() {
			if q.Required {
				return nil, stepError(models.StepQuestions, q.ID, "an answer is required")
			}
			continue
		}
		switch q.Type {
		case models.QuestionSingleChoice:
			if ans.IsMulti() || !containsString(q.Options, ans.Text) {
				return nil, stepError(models.StepQuestions, q.ID, "answer must be one of the options")
			}
		case models.QuestionMultiChoice:
			choices := ans.Choices
			if !ans.IsMulti() {
				choices = []string{ans.Text}
			}
			for _, c := range choices {
				if !containsString(q.Options, c) {
					return nil, stepError(models.StepQuestions, q.ID, "%q is not an option", c)
				}
			}
			ans = models.ChoiceAnswer(choices...)
		}
		out[q.ID] = ans
	}
	return out, nil
}

func checkDateTimes(raw []string) (*models.SelectedDateTime, error) {
	if len(raw) == 0 {
		return nil, stepError(models.StepDateTimeSelection, "dateTimes", "pick at least one date and time")
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
		if err != nil {
			return nil, stepError(models.StepDateTimeSelection, "dateTimes", "%q is not an ISO-8601 date-time", v)
		}
		out = append(out, ts.Format(time.RFC3339))
	}
	return &models.SelectedDateTime{DateTimes: out}, nil
}

func checkCustomer(c *models.CustomerDetails) (*models.CustomerDetails, error) {
	if c == nil {
		return nil, stepError(models.StepCustomerDetails, "customer", "customer details are required")
	}
	out := *c
	out.Name = strings.TrimSpace(out.Name)
	out.Email = strings.TrimSpace(out.Email)
	out.Phone = strings.TrimSpace(out.Phone)
	if out.Name == "" {
		return nil, stepError(models.StepCustomerDetails, "name", "name is required")
	}
	if out.Email == "" {
		return nil, stepError(models.StepCustomerDetails, "email", "email is required")
	}
	if _, err := mail.ParseAddress(out.Email); err != nil {
		return nil, stepError(models.StepCustomerDetails, "email", "email is not valid")
	}
	return &out, nil
}

func hasRequired(svc *models.Service, step models.WizardStep) bool {
	switch step {
	case models.StepRequirements:
		for _, r := range svc.Requirements {
			if r.Required {
				return true
			}
		}
	case models.StepQuestions:
		for _, q := range svc.Questions {
			if q.Required {
				return true
			}
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
