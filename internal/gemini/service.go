package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shift-agent/shift-agent/internal/logging"
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
	"github.com/shift-agent/shift-agent/internal/timefmt"
)

type Companies interface {
	Get(ctx context.Context, companyID int64) (*domain.CompanyProfile, error)
}

type Crew interface {
	List(ctx context.Context, companyID int64) ([]domain.CrewMember, error)
}

// Shifts is satisfied by the scheduling ShiftService.
type Shifts interface {
	Submitted(ctx context.Context, companyID int64, first, last string) ([]domain.SubmittedShift, error)
	Drafts(ctx context.Context, companyID int64) ([]domain.MemberSummary, []domain.EditShift, error)
	ReplaceDrafts(ctx context.Context, companyID int64, first, last string, shifts []domain.EditShift) ([]domain.EditShift, error)
	Decided(ctx context.Context, companyID int64, first, last string) ([]domain.DecisionShift, []string, error)
}

type Evaluations interface {
	Save(ctx context.Context, e *domain.Evaluation) error
	Latest(ctx context.Context, companyID int64) (*domain.Evaluation, error)
}

type Service struct {
	gen         Generator
	companies   Companies
	crew        Crew
	shifts      Shifts
	evaluations Evaluations
}

// NewService wires the AI features. gen may be nil when no API key is
// configured; every call then fails with ErrModelUnavailable.
func NewService(gen Generator, companies Companies, crew Crew, shifts Shifts, evaluations Evaluations) *Service {
	return &Service{
		gen:         gen,
		companies:   companies,
		crew:        crew,
		shifts:      shifts,
		evaluations: evaluations,
	}
}

// Evaluated is the outcome of one schedule review.
type Evaluated struct {
	Evaluation    domain.Evaluation
	Company       domain.Company
	Members       []domain.CrewMember
	DecisionShift []domain.DecisionShift
	EditShiftIDs  []int64
}

// CreateShifts asks the model for a schedule over [first, last] and replaces
// the drafts in that range with it. The model output is rejected as a whole
// if any shift breaks a rule.
func (s *Service) CreateShifts(ctx context.Context, companyID int64, first, last, comment string) ([]domain.EditShift, error) {
	if s.gen == nil {
		return nil, ErrModelUnavailable
	}
	first, last, err := canonicalRange(first, last)
	if err != nil {
		return nil, err
	}

	profile, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	members, err := s.crew.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	submitted, err := s.shifts.Submitted(ctx, companyID, first, last)
	if err != nil {
		return nil, err
	}
	restDays := inRange(profile.RestDays, first, last)

	prompt, err := buildCreatePrompt(createInput{
		FirstDay:       first,
		LastDay:        last,
		Comment:        comment,
		CompanyInfo:    profile.Company,
		RestDay:        restDays,
		PositionName:   profile.Positions,
		CompanyMember:  promptMembers(members),
		SubmittedShift: submitted,
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.Generate(ctx, createSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	var out createOutput
	if err := decodeModelJSON(raw, &out); err != nil {
		return nil, err
	}

	shifts, err := validateGenerated(out.EditShift, companyID, first, last, members, restDays)
	if err != nil {
		logging.FromContext(ctx).Warn("generated schedule rejected",
			zap.Int64("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return s.shifts.ReplaceDrafts(ctx, companyID, first, last, shifts)
}

// Evaluate reviews the decision shifts in [first, last], stores the review
// and reports which drafts correspond to the flagged shifts.
func (s *Service) Evaluate(ctx context.Context, companyID int64, first, last string) (*Evaluated, error) {
	if s.gen == nil {
		return nil, ErrModelUnavailable
	}
	first, last, err := canonicalRange(first, last)
	if err != nil {
		return nil, err
	}

	profile, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	members, err := s.crew.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	decided, restDays, err := s.shifts.Decided(ctx, companyID, first, last)
	if err != nil {
		return nil, err
	}
	if len(decided) == 0 {
		return nil, ErrNothingToEvaluate
	}

	prompt, err := buildEvaluatePrompt(evaluateInput{
		FirstDay:      first,
		LastDay:       last,
		CompanyInfo:   profile.Company,
		RestDay:       restDays,
		CompanyMember: promptMembers(members),
		DecisionShift: decided,
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.Generate(ctx, evaluateSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	var out evaluateOutput
	if err := decodeModelJSON(raw, &out); err != nil {
		return nil, err
	}
	if out.Comment == "" {
		return nil, fmt.Errorf("%w: missing comment", ErrInvalidModelOutput)
	}

	known := make(map[int64]domain.DecisionShift, len(decided))
	for _, d := range decided {
		known[d.DecisionShiftID] = d
	}
	flagged := make([]int64, 0, len(out.Flagged))
	seen := make(map[int64]bool)
	for _, id := range out.Flagged {
		if _, ok := known[id]; ok && !seen[id] {
			seen[id] = true
			flagged = append(flagged, id)
		}
	}

	_, drafts, err := s.shifts.Drafts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	editIDs := make([]int64, 0)
	for _, d := range drafts {
		if d.Day < first || d.Day > last {
			continue
		}
		for _, id := range flagged {
			f := known[id]
			if f.UserID == d.UserID && f.Day == d.Day {
				editIDs = append(editIDs, d.EditShiftID)
				break
			}
		}
	}

	e := domain.Evaluation{
		CompanyID: companyID,
		StartDay:  first,
		FinishDay: last,
		Comment:   out.Comment,
		Flagged:   flagged,
	}
	if err := s.evaluations.Save(ctx, &e); err != nil {
		return nil, err
	}

	return &Evaluated{
		Evaluation:    e,
		Company:       profile.Company,
		Members:       members,
		DecisionShift: decided,
		EditShiftIDs:  editIDs,
	}, nil
}

// LatestEvaluation returns the last stored review of the company.
func (s *Service) LatestEvaluation(ctx context.Context, companyID int64) (*domain.Evaluation, error) {
	return s.evaluations.Latest(ctx, companyID)
}

func validateGenerated(gen []generatedShift, companyID int64, first, last string, members []domain.CrewMember, restDays []string) ([]domain.EditShift, error) {
	memberIDs := make(map[int64]bool, len(members))
	for _, m := range members {
		memberIDs[m.UserID] = true
	}
	closed := make(map[string]bool, len(restDays))
	for _, d := range restDays {
		closed[d] = true
	}

	out := make([]domain.EditShift, 0, len(gen))
	seen := make(map[domain.EditShift]bool)
	for i, g := range gen {
		e := domain.EditShift{
			UserID:     g.UserID,
			CompanyID:  companyID,
			Day:        g.Day,
			StartTime:  g.StartTime,
			FinishTime: g.FinishTime,
		}
		if err := domain.NormalizeEditShift(&e); err != nil {
			return nil, fmt.Errorf("%w: shift %d: %v", ErrInvalidModelOutput, i, err)
		}
		switch {
		case !memberIDs[e.UserID]:
			return nil, fmt.Errorf("%w: shift %d: user_id %d is not a member", ErrInvalidModelOutput, i, e.UserID)
		case e.Day < first || e.Day > last:
			return nil, fmt.Errorf("%w: shift %d: %s outside %s..%s", ErrInvalidModelOutput, i, e.Day, first, last)
		case closed[e.Day]:
			return nil, fmt.Errorf("%w: shift %d: %s is a rest day", ErrInvalidModelOutput, i, e.Day)
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out, nil
}

func canonicalRange(first, last string) (string, string, error) {
	from, to, err := domain.ParseRange(first, last)
	if err != nil {
		return "", "", err
	}
	return timefmt.FormatDateToISO(from), timefmt.FormatDateToISO(to), nil
}

func inRange(days []string, first, last string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		if d >= first && d <= last {
			out = append(out, d)
		}
	}
	return out
}
