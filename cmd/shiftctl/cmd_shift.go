package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shift-agent/shift-agent/internal/client/services"
	"github.com/shift-agent/shift-agent/internal/client/session"
)

func (a *app) shiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Submit, adjust and publish shifts",
	}
	cmd.AddCommand(
		a.shiftSubmitCmd(),
		a.shiftSubmittedCmd(),
		a.shiftDraftsCmd(),
		a.shiftEditCmd(),
		a.shiftCompleteCmd(),
		a.shiftDecidedCmd(),
	)
	return cmd
}

func (a *app) shiftSubmitCmd() *cobra.Command {
	var slots []string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the windows you can work",
		Long: `Submits availability for the logged-in member. A finish earlier than
the start ends the next day.`,
		Example: `  shiftctl shift submit --slot 2025-07-10,09:00,17:00 --slot 2025-07-11,22:00,02:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := services.UserID(ctx, a.sessions)
			if err != nil {
				return err
			}
			companyID, err := a.companyID(ctx)
			if err != nil {
				return err
			}

			parsed := make([]services.ShiftSlot, 0, len(slots))
			for _, raw := range slots {
				f, err := splitFields(raw, 3, "DAY,START,FINISH")
				if err != nil {
					return err
				}
				parsed = append(parsed, services.ShiftSlot{Day: f[0], StartTime: f[1], FinishTime: f[2]})
			}

			member := services.MemberRef{UserID: userID, CompanyID: companyID}
			if err := a.shifts.Submit(ctx, member, parsed); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Submitted %d shift(s)\n", len(parsed))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&slots, "slot", nil, "DAY,START,FINISH (repeatable)")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}

func (a *app) shiftSubmittedCmd() *cobra.Command {
	var first, last string
	cmd := &cobra.Command{
		Use:   "submitted",
		Short: "List availability submitted by the crew",
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
			shifts, err := a.shifts.Submitted(ctx, companyID, first, last)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(shifts))
			for _, s := range shifts {
				rows = append(rows, []string{itoa(s.SubmittedShiftID), itoa(s.UserID), s.Day, window(s.StartTime, s.FinishTime)})
			}
			renderTable(a.out, []string{"ID", "USER", "DAY", "WINDOW"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&first, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&last, "to", "", "last day, YYYY-MM-DD")
	return cmd
}

func (a *app) shiftDraftsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drafts",
		Short: "Show draft shifts and the crew they can go to",
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
			resp, err := a.shifts.Drafts(ctx, companyID)
			if err != nil {
				return err
			}

			names := make(map[int64]string, len(resp.CompanyMember))
			for _, m := range resp.CompanyMember {
				names[m.UserID] = m.Name
			}
			rows := make([][]string, 0, len(resp.EditShift))
			for _, e := range resp.EditShift {
				rows = append(rows, []string{itoa(e.EditShiftID), e.Day, itoa(e.UserID), names[e.UserID], window(e.StartTime, e.FinishTime)})
			}
			renderTable(a.out, []string{"ID", "DAY", "USER", "NAME", "WINDOW"}, rows)
			return nil
		},
	}
}

func (a *app) shiftEditCmd() *cobra.Command {
	var adds, updates []string
	var deletes []int64
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Add, change or remove draft shifts in one save",
		Example: `  shiftctl shift edit --add 7,2025-07-10,09:00,17:00
  shiftctl shift edit --update 21,7,2025-07-10,10:00,18:00 --delete 22`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.requireRole(ctx, session.RoleOwner); err != nil {
				return err
			}
			if len(adds)+len(updates)+len(deletes) == 0 {
				return fmt.Errorf("nothing to change, use --add, --update or --delete")
			}
			companyID, err := a.companyID(ctx)
			if err != nil {
				return err
			}

			changes := services.EditShiftChanges{CompanyID: companyID}
			for _, raw := range adds {
				f, err := splitFields(raw, 4, "USER,DAY,START,FINISH")
				if err != nil {
					return err
				}
				user, err := parseID(f[0])
				if err != nil {
					return err
				}
				changes.AddEditShift = append(changes.AddEditShift, services.EditShift{UserID: user, Day: f[1], StartTime: f[2], FinishTime: f[3]})
			}
			for _, raw := range updates {
				f, err := splitFields(raw, 5, "ID,USER,DAY,START,FINISH")
				if err != nil {
					return err
				}
				id, err := parseID(f[0])
				if err != nil {
					return err
				}
				user, err := parseID(f[1])
				if err != nil {
					return err
				}
				changes.UpdateEditShift = append(changes.UpdateEditShift, services.EditShift{EditShiftID: id, UserID: user, Day: f[2], StartTime: f[3], FinishTime: f[4]})
			}
			for _, id := range deletes {
				changes.DeleteEditShift = append(changes.DeleteEditShift, services.EditShiftID{EditShiftID: id})
			}

			res, err := a.shifts.SaveDrafts(ctx, changes)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added %d, updated %d, deleted %d", res.Added, res.Updated, res.Deleted)
			if res.Skipped > 0 {
				fmt.Fprintf(a.out, ", skipped %d past shift(s)", res.Skipped)
			}
			fmt.Fprintln(a.out)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&adds, "add", nil, "USER,DAY,START,FINISH (repeatable)")
	cmd.Flags().StringArrayVar(&updates, "update", nil, "ID,USER,DAY,START,FINISH (repeatable)")
	cmd.Flags().Int64SliceVar(&deletes, "delete", nil, "draft id to delete (repeatable)")
	return cmd
}

func (a *app) shiftCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Publish future drafts as the decided schedule",
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
			res, err := a.shifts.Complete(ctx, companyID)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Published %d shift(s)\n", res.Decided)
			return nil
		},
	}
}

func (a *app) shiftDecidedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decided",
		Short: "Show the published schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			companyID, err := a.companyID(ctx)
			if err != nil {
				return err
			}
			resp, err := a.shifts.Decided(ctx, companyID)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(resp.DecisionShift))
			for _, d := range resp.DecisionShift {
				rows = append(rows, []string{d.Day, d.Name, d.Position, d.Post, window(d.StartTime, d.FinishTime)})
			}
			renderTable(a.out, []string{"DAY", "NAME", "POSITION", "POST", "WINDOW"}, rows)
			if len(resp.RestDay) > 0 {
				fmt.Fprintf(a.out, "Rest days: %s\n", strings.Join(resp.RestDay, ", "))
			}
			return nil
		},
	}
}

func splitFields(raw string, n int, format string) ([]string, error) {
	f := strings.Split(raw, ",")
	if len(f) != n {
		return nil, fmt.Errorf("%q: expected %s", raw, format)
	}
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}
	return f, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid id", s)
	}
	return id, nil
}
