package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shift-agent/shift-agent/internal/client/services"
	"github.com/shift-agent/shift-agent/internal/client/session"
)

func (a *app) storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Show or edit the store profile",
	}
	cmd.AddCommand(a.storeShowCmd(), a.storeEditCmd())
	return cmd
}

func (a *app) storeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the store profile, rest days and positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			companyID, err := a.companyID(ctx)
			if err != nil {
				return err
			}
			info, err := a.store.Get(ctx, companyID)
			if err != nil {
				return err
			}

			c := info.CompanyInfo
			renderTable(a.out, []string{"FIELD", "VALUE"}, [][]string{
				{"company_id", itoa(c.CompanyID)},
				{"name", c.CompanyName},
				{"location", c.StoreLocate},
				{"open", c.OpenTime},
				{"close", c.CloseTime},
				{"target_sales", itoa(c.TargetSales)},
				{"labor_cost", itoa(c.LaborCost)},
				{"rest_days", strings.Join(info.RestDay, ", ")},
				{"positions", strings.Join(info.PositionName, ", ")},
			})
			return nil
		},
	}
}

func (a *app) storeEditCmd() *cobra.Command {
	var (
		name, locate, open, closing string
		targetSales, laborCost      int64
		restDays, positions         []string
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change the store profile",
		Long: `Loads the current profile, applies the given flags and saves it.
--rest-day and --position replace the whole list when given.`,
		Example: `  shiftctl store edit --open 09:00 --close 22:00
  shiftctl store edit --rest-day 2025-07-07 --rest-day 2025-07-14 --position hall --position kitchen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.requireRole(ctx, session.RoleOwner); err != nil {
				return err
			}
			companyID, err := a.companyID(ctx)
			if err != nil {
				return err
			}
			current, err := a.store.Get(ctx, companyID)
			if err != nil {
				return err
			}

			req := services.CompanyInfoEditRequest{CompanyInfo: current.CompanyInfo}
			req.CompanyInfo.CompanyID = companyID
			f := cmd.Flags()
			if f.Changed("name") {
				req.CompanyInfo.CompanyName = name
			}
			if f.Changed("location") {
				req.CompanyInfo.StoreLocate = locate
			}
			if f.Changed("open") {
				req.CompanyInfo.OpenTime = open
			}
			if f.Changed("close") {
				req.CompanyInfo.CloseTime = closing
			}
			if f.Changed("target-sales") {
				req.CompanyInfo.TargetSales = targetSales
			}
			if f.Changed("labor-cost") {
				req.CompanyInfo.LaborCost = laborCost
			}

			days := current.RestDay
			if f.Changed("rest-day") {
				days = restDays
			}
			for _, d := range days {
				req.RestDay = append(req.RestDay, services.RestDay{RestDay: d})
			}
			names := current.PositionName
			if f.Changed("position") {
				names = positions
			}
			for _, p := range names {
				req.Position = append(req.Position, services.Position{PositionName: p})
			}

			if err := a.store.Update(ctx, req); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Store profile saved")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "store name")
	f.StringVar(&locate, "location", "", "store location")
	f.StringVar(&open, "open", "", "opening time, HH:MM")
	f.StringVar(&closing, "close", "", "closing time, HH:MM")
	f.Int64Var(&targetSales, "target-sales", 0, "monthly sales target")
	f.Int64Var(&laborCost, "labor-cost", 0, "monthly labor cost budget")
	f.StringArrayVar(&restDays, "rest-day", nil, "closed day, YYYY-MM-DD (repeatable)")
	f.StringArrayVar(&positions, "position", nil, "position name (repeatable)")
	return cmd
}
