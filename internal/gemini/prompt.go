package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

const createSystemPrompt = `You build shift schedules for a small store.
You receive the store profile, its closed days, the crew and the availability
each member submitted. Assign shifts between first_day and last_day inclusive.
Rules:
- only assign a member inside a window they submitted
- never assign anyone on a rest_day
- stay inside open_time and close_time when they are set
- spread hours fairly and prefer experienced members when coverage is thin
- follow the owner's comment when it does not break the rules above
Respond with JSON only, shaped as
{"edit_shift":[{"user_id":1,"day":"YYYY-MM-DD","start_time":"HH:MM:SS","finish_time":"HH:MM:SS"}]}`

const evaluateSystemPrompt = `You review a confirmed shift schedule for a small store.
You receive the store profile, its closed days, the crew and the confirmed
shifts between first_day and last_day. Judge coverage, fairness of hours,
labor cost against target sales and whether inexperienced members are left
alone. Point out the shifts that should be changed.
Respond with JSON only, shaped as
{"comment":"short review for the owner","flagged_decision_shift_ids":[1,2]}`

type promptMember struct {
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Evaluate   int    `json:"evaluate"`
	Experience string `json:"experience"`
	Post       string `json:"post"`
	HourPay    int64  `json:"hour_pay"`
}

type createInput struct {
	FirstDay       string                  `json:"first_day"`
	LastDay        string                  `json:"last_day"`
	Comment        string                  `json:"comment,omitempty"`
	CompanyInfo    domain.Company          `json:"company_info"`
	RestDay        []string                `json:"rest_day"`
	PositionName   []string                `json:"position_name"`
	CompanyMember  []promptMember          `json:"company_member"`
	SubmittedShift []domain.SubmittedShift `json:"submitted_shift"`
}

type evaluateInput struct {
	FirstDay      string                 `json:"first_day"`
	LastDay       string                 `json:"last_day"`
	CompanyInfo   domain.Company         `json:"company_info"`
	RestDay       []string               `json:"rest_day"`
	CompanyMember []promptMember         `json:"company_member"`
	DecisionShift []domain.DecisionShift `json:"decision_shift"`
}

func promptMembers(members []domain.CrewMember) []promptMember {
	out := make([]promptMember, 0, len(members))
	for _, m := range members {
		out = append(out, promptMember{
			UserID:     m.UserID,
			Name:       m.Name,
			Position:   m.Position,
			Evaluate:   m.Evaluate,
			Experience: m.Experience,
			Post:       m.Post,
			HourPay:    m.HourPay,
		})
	}
	return out
}

func buildCreatePrompt(in createInput) (string, error) {
	b, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode create prompt: %w", err)
	}
	return "Build the schedule for this input:\n" + string(b), nil
}

func buildEvaluatePrompt(in evaluateInput) (string, error) {
	b, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode evaluate prompt: %w", err)
	}
	return "Review this schedule:\n" + string(b), nil
}

type generatedShift struct {
	UserID     int64  `json:"user_id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	FinishTime string `json:"finish_time"`
}

type createOutput struct {
	EditShift []generatedShift `json:"edit_shift"`
}

type evaluateOutput struct {
	Comment string  `json:"comment"`
	Flagged []int64 `json:"flagged_decision_shift_ids"`
}

// decodeModelJSON unmarshals a model reply, tolerating a markdown code fence
// around the payload.
func decodeModelJSON(raw string, dst any) error {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}
	return nil
}
