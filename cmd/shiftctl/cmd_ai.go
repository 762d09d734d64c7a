package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shift-agent/shift-agent/internal/client/services"
	"github.com/shift-agent/shift-agent/internal/client/session"
)

func (a *app) aiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Generate or review schedules with Gemini",
	}
	cmd.AddCommand(a.aiCreateCmd(), a.aiEvaluateCmd())
	return cmd
}

func (a *app) aiCreateCmd() *cobra.Command {
	var first, last, comment string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate drafts for a date range",
		Long: `Asks the model for a schedule built from the submitted availability.
Every draft in the range is replaced by the result.`,
		Example: `  shiftctl ai create --from 2025-07-01 --to 2025-07-31 --comment "two people on weekend evenings"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.requireRole(ctx, session.RoleOwner); err != nil {
				return err
			}
			companyID, err := a.companyID(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.errOut, hintStyle.Render("Generating, this can take a minute..."))
			resp, err := a.gemini.CreateShift(ctx, services.GeminiCreateShiftRequest{
				CompanyID: companyID,
				FirstDay:  first,
				LastDay:   last,
				Comment:   comment,
			})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(resp.EditShift))
			for _, e := range resp.EditShift {
				rows = append(rows, []string{itoa(e.EditShiftID), e.Day, itoa(e.UserID), window(e.StartTime, e.FinishTime)})
			}
			renderTable(a.out, []string{"ID", "DAY", "USER", "WINDOW"}, rows)
			fmt.Fprintf(a.out, "%d draft(s) generated. Review with `shiftctl shift drafts`.\n", len(resp.EditShift))
			return nil
		},
	}
	cmd.Flags().StringVar(&first, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&last, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&comment, "comment", "", "instructions for the model")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (a *app) aiEvaluateCmd() *cobra.Command {
	var first, last string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Review the published schedule for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.requireRole(ctx, session.RoleOwner); err != nil {
				return err
			}
			companyID, err := a.companyID(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.errOut, hintStyle.Render("Evaluating, this can take a minute..."))
			resp, err := a.gemini.EvaluateShift(ctx, services.GeminiEvaluateShiftRequest{
				CompanyID: companyID,
				FirstDay:  first,
				LastDay:   last,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, headerStyle.Render("Review"))
			fmt.Fprintln(a.out, resp.Comment)
			if len(resp.EditShiftID) > 0 {
				ids := make([]string, 0, len(resp.EditShiftID))
				for _, id := range resp.EditShiftID {
					ids = append(ids, itoa(id))
				}
				fmt.Fprintf(a.out, "Drafts to revisit: %s\n", strings.Join(ids, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&first, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&last, "to", "", "last day, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
