package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shift-agent/shift-agent/internal/client/apiclient"
	"github.com/shift-agent/shift-agent/internal/timefmt"
)

var ErrInvalidProfile = errors.New("invalid crew profile")

type CrewService struct {
	client *apiclient.Client
}

func NewCrewService(client *apiclient.Client) *CrewService {
	return &CrewService{client: client}
}

func (s *CrewService) List(ctx context.Context, companyID int64) ([]CrewMember, error) {
	var resp CrewInfoResponse
	if err := s.client.Get(ctx, "/crew-info", companyQuery(companyID), &resp); err != nil {
		return nil, err
	}
	return resp.CompanyMember, nil
}

// Create registers a crew account under the owner's company.
func (s *CrewService) Create(ctx context.Context, req CrewCreateRequest) (*CrewCreateResponse, error) {
	if err := checkProfile(req.Phone, req.Evaluate, req.Experience, req.Post); err != nil {
		return nil, err
	}
	day, err := normalizeDay(req.JoinCompanyDay)
	if err != nil {
		return nil, err
	}
	req.JoinCompanyDay = day

	var resp CrewCreateResponse
	if err := s.client.Post(ctx, "/crew-info", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *CrewService) Update(ctx context.Context, req CrewEditRequest) error {
	if err := checkProfile(req.Phone, req.Evaluate, req.Experience, req.Post); err != nil {
		return err
	}
	day, err := normalizeDay(req.JoinCompanyDay)
	if err != nil {
		return err
	}
	req.JoinCompanyDay = day
	return s.client.Post(ctx, "/crew-info-edit", req, nil)
}

func checkProfile(phone string, evaluate int, experience, post string) error {
	if !strings.Contains(phone, "-") {
		return fmt.Errorf("%w: phone must contain '-'", ErrInvalidProfile)
	}
	if evaluate < 1 || evaluate > 5 {
		return fmt.Errorf("%w: evaluate must be 1..5", ErrInvalidProfile)
	}
	if experience != "beginner" && experience != "veteran" {
		return fmt.Errorf("%w: experience must be beginner or veteran", ErrInvalidProfile)
	}
	if post != "part_timer" && post != "employee" {
		return fmt.Errorf("%w: post must be part_timer or employee", ErrInvalidProfile)
	}
	return nil
}

func normalizeDay(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	d, err := timefmt.ParseISODate(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return timefmt.FormatDateToISO(d), nil
}
