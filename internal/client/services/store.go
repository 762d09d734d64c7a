package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shift-agent/shift-agent/internal/client/apiclient"
	"github.com/shift-agent/shift-agent/internal/timefmt"
)

type StoreService struct {
	client *apiclient.Client
}

func NewStoreService(client *apiclient.Client) *StoreService {
	return &StoreService{client: client}
}

func (s *StoreService) Get(ctx context.Context, companyID int64) (*CompanyInfoResponse, error) {
	var resp CompanyInfoResponse
	if err := s.client.Get(ctx, "/company-info", companyQuery(companyID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update replaces the company profile, rest days and positions.
func (s *StoreService) Update(ctx context.Context, req CompanyInfoEditRequest) error {
	open := timefmt.FormatTimeToISO(req.CompanyInfo.OpenTime)
	if open == "" {
		return fmt.Errorf("%w: open time %q", ErrInvalidTime, req.CompanyInfo.OpenTime)
	}
	closing := timefmt.FormatTimeToISO(req.CompanyInfo.CloseTime)
	if closing == "" {
		return fmt.Errorf("%w: close time %q", ErrInvalidTime, req.CompanyInfo.CloseTime)
	}
	req.CompanyInfo.OpenTime = open
	req.CompanyInfo.CloseTime = closing

	for i, rd := range req.RestDay {
		d, err := timefmt.ParseISODate(rd.RestDay)
		if err != nil {
			return fmt.Errorf("%w: rest day %q", ErrInvalidDate, rd.RestDay)
		}
		req.RestDay[i].RestDay = timefmt.FormatDateToISO(d)
	}

	return s.client.Post(ctx, "/company-info-edit", req, nil)
}

func companyQuery(companyID int64) url.Values {
	return url.Values{"company_id": {strconv.FormatInt(companyID, 10)}}
}
