package services

import (
	"context"
	"fmt"

	"github.com/shift-agent/shift-agent/internal/client/apiclient"
	"github.com/shift-agent/shift-agent/internal/timefmt"
)

// GeminiService calls the AI endpoints, which run on the long timeout.
type GeminiService struct {
	client *apiclient.Client
}

func NewGeminiService(client *apiclient.Client) *GeminiService {
	return &GeminiService{client: client}
}

func (s *GeminiService) CreateShift(ctx context.Context, req GeminiCreateShiftRequest) (*GeminiCreateShiftResponse, error) {
	first, last, err := normalizeRange(req.FirstDay, req.LastDay)
	if err != nil {
		return nil, err
	}
	req.FirstDay, req.LastDay = first, last

	var resp GeminiCreateShiftResponse
	if err := s.client.PostLong(ctx, "/gemini-create-shift", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GeminiService) EvaluateShift(ctx context.Context, req GeminiEvaluateShiftRequest) (*GeminiEvaluateShiftResponse, error) {
	first, last, err := normalizeRange(req.FirstDay, req.LastDay)
	if err != nil {
		return nil, err
	}
	req.FirstDay, req.LastDay = first, last

	var resp GeminiEvaluateShiftResponse
	if err := s.client.PostLong(ctx, "/gemini-evaluate-shift", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func normalizeRange(first, last string) (string, string, error) {
	f, err := timefmt.ParseISODate(first)
	if err != nil {
		return "", "", fmt.Errorf("%w: first day %q", ErrInvalidDate, first)
	}
	l, err := timefmt.ParseISODate(last)
	if err != nil {
		return "", "", fmt.Errorf("%w: last day %q", ErrInvalidDate, last)
	}
	if l.Before(f) {
		return "", "", fmt.Errorf("%w: %s is after %s", ErrInvalidRange, first, last)
	}
	return timefmt.FormatDateToISO(f), timefmt.FormatDateToISO(l), nil
}
