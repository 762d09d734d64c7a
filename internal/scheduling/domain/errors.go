package domain

import "errors"

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrCrewNotFound     = errors.New("crew member not found")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrInvalidProfile   = errors.New("invalid crew profile")
	ErrInvalidCompany   = errors.New("invalid company info")
	ErrInvalidShift     = errors.New("invalid shift")
	ErrInvalidRange     = errors.New("invalid date range")
	ErrNotCompanyMember = errors.New("user does not belong to company")
)
