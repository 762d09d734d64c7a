package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shift-agent/shift-agent/internal/timefmt"
)

// NormalizeSlot canonicalizes the day and times of s. Zero-length shifts are
// rejected; overnight shifts are allowed.
func NormalizeSlot(s Slot) (Slot, error) {
	day, err := timefmt.ParseISODate(s.Day)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: day %q", ErrInvalidShift, s.Day)
	}
	start := timefmt.FormatTimeToISO(s.StartTime)
	if start == "" {
		return Slot{}, fmt.Errorf("%w: start_time %q", ErrInvalidShift, s.StartTime)
	}
	finish := timefmt.FormatTimeToISO(s.FinishTime)
	if finish == "" {
		return Slot{}, fmt.Errorf("%w: finish_time %q", ErrInvalidShift, s.FinishTime)
	}
	if start == finish {
		return Slot{}, fmt.Errorf("%w: zero-length shift on %s", ErrInvalidShift, s.Day)
	}
	return Slot{Day: timefmt.FormatDateToISO(day), StartTime: start, FinishTime: finish}, nil
}

// NormalizeEditShift normalizes the slot of e in place.
func NormalizeEditShift(e *EditShift) error {
	s, err := NormalizeSlot(e.Slot())
	if err != nil {
		return err
	}
	e.Day, e.StartTime, e.FinishTime = s.Day, s.StartTime, s.FinishTime
	return nil
}

// ParseRange parses an inclusive YYYY-MM-DD range.
func ParseRange(first, last string) (time.Time, time.Time, error) {
	from, err := timefmt.ParseISODate(first)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: first_day %q", ErrInvalidRange, first)
	}
	to, err := timefmt.ParseISODate(last)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: last_day %q", ErrInvalidRange, last)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: last_day before first_day", ErrInvalidRange)
	}
	return from, to, nil
}

// ValidateProfile checks the profile constraints and normalizes the join date.
func ValidateProfile(m *CrewMember) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if !strings.Contains(m.Phone, "-") {
		return fmt.Errorf("%w: phone must contain '-'", ErrInvalidProfile)
	}
	if m.Evaluate < 1 || m.Evaluate > 5 {
		return fmt.Errorf("%w: evaluate must be 1..5", ErrInvalidProfile)
	}
	if m.Experience != ExperienceBeginner && m.Experience != ExperienceVeteran {
		return fmt.Errorf("%w: experience must be %s or %s", ErrInvalidProfile, ExperienceBeginner, ExperienceVeteran)
	}
	if m.Post != PostPartTimer && m.Post != PostEmployee {
		return fmt.Errorf("%w: post must be %s or %s", ErrInvalidProfile, PostPartTimer, PostEmployee)
	}
	if m.Age < 0 || m.HourPay < 0 {
		return fmt.Errorf("%w: age and hour_pay must not be negative", ErrInvalidProfile)
	}
	if m.JoinCompanyDay != "" {
		d, err := timefmt.ParseISODate(m.JoinCompanyDay)
		if err != nil {
			return fmt.Errorf("%w: join_company_day %q", ErrInvalidProfile, m.JoinCompanyDay)
		}
		m.JoinCompanyDay = timefmt.FormatDateToISO(d)
	}
	return nil
}

// ValidateCompany normalizes times and rest days of p.
func ValidateCompany(p *CompanyProfile) error {
	c := &p.Company
	c.CompanyName = strings.TrimSpace(c.CompanyName)
	if c.CompanyName == "" {
		return fmt.Errorf("%w: company_name is required", ErrInvalidCompany)
	}
	for _, t := range []*string{&c.OpenTime, &c.CloseTime} {
		if *t == "" {
			continue
		}
		n := timefmt.FormatTimeToISO(*t)
		if n == "" {
			return fmt.Errorf("%w: time %q", ErrInvalidCompany, *t)
		}
		*t = n
	}
	if c.TargetSales < 0 || c.LaborCost < 0 {
		return fmt.Errorf("%w: target_sales and labor_cost must not be negative", ErrInvalidCompany)
	}

	seen := make(map[string]bool, len(p.RestDays))
	days := p.RestDays[:0]
	for _, d := range p.RestDays {
		t, err := timefmt.ParseISODate(d)
		if err != nil {
			return fmt.Errorf("%w: rest_day %q", ErrInvalidCompany, d)
		}
		iso := timefmt.FormatDateToISO(t)
		if !seen[iso] {
			seen[iso] = true
			days = append(days, iso)
		}
	}
	p.RestDays = days

	seen = make(map[string]bool, len(p.Positions))
	positions := p.Positions[:0]
	for _, name := range p.Positions {
		name = strings.TrimSpace(name)
		if name != "" && !seen[name] {
			seen[name] = true
			positions = append(positions, name)
		}
	}
	p.Positions = positions
	return nil
}
