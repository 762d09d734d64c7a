package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/shift-agent/shift-agent/internal/client/apiclient"
	"github.com/shift-agent/shift-agent/internal/client/apierr"
	"github.com/shift-agent/shift-agent/internal/client/services"
	"github.com/shift-agent/shift-agent/internal/timefmt"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

const reloginHint = "Run `shiftctl login` to sign in again."

func renderError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error:")+" "+apierr.Message(err))

	var aerr *apiclient.AuthError
	if errors.As(err, &aerr) || errors.Is(err, services.ErrNotLoggedIn) {
		fmt.Fprintln(w, hintStyle.Render(reloginHint))
	}
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, hintStyle.Render("(none)"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// window renders a shift as "09:00-17:00 (8.0h)".
func window(start, finish string) string {
	return fmt.Sprintf("%s-%s (%.1fh)",
		timefmt.FormatTimeForInput(start), timefmt.FormatTimeForInput(finish), timefmt.ShiftHours(start, finish))
}
