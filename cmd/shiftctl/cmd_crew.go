package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shift-agent/shift-agent/internal/client/services"
	"github.com/shift-agent/shift-agent/internal/client/session"
)

// profileFlags are the crew profile fields shared by create and edit.
type profileFlags struct {
	name, phone, position, experience, joined, post string
	age, evaluate                                   int
	hourPay                                         int64
}

func (p *profileFlags) register(f *pflag.FlagSet) {
	f.StringVar(&p.name, "name", "", "full name")
	f.IntVar(&p.age, "age", 0, "age")
	f.StringVar(&p.phone, "phone", "", "phone number, must contain '-'")
	f.StringVar(&p.position, "position", "", "position name")
	f.IntVar(&p.evaluate, "evaluate", 3, "evaluation 1..5")
	f.StringVar(&p.experience, "experience", "beginner", "beginner or veteran")
	f.StringVar(&p.joined, "joined", "", "join date, YYYY-MM-DD")
	f.Int64Var(&p.hourPay, "hour-pay", 0, "hourly pay")
	f.StringVar(&p.post, "post", "part_timer", "part_timer or employee")
}

// apply copies the flags that were set onto m.
func (p *profileFlags) apply(f *pflag.FlagSet, m *services.CrewMember) {
	if f.Changed("name") {
		m.Name = p.name
	}
	if f.Changed("age") {
		m.Age = p.age
	}
	if f.Changed("phone") {
		m.Phone = p.phone
	}
	if f.Changed("position") {
		m.Position = p.position
	}
	if f.Changed("evaluate") {
		m.Evaluate = p.evaluate
	}
	if f.Changed("experience") {
		m.Experience = p.experience
	}
	if f.Changed("joined") {
		m.JoinCompanyDay = p.joined
	}
	if f.Changed("hour-pay") {
		m.HourPay = p.hourPay
	}
	if f.Changed("post") {
		m.Post = p.post
	}
}

func (a *app) crewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crew",
		Short: "List and manage crew members",
	}
	cmd.AddCommand(a.crewListCmd(), a.crewCreateCmd(), a.crewEditCmd())
	return cmd
}

func (a *app) crewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the crew of your store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			companyID, err := a.companyID(ctx)
			if err != nil {
				return err
			}
			members, err := a.crew.List(ctx, companyID)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(members))
			for _, m := range members {
				rows = append(rows, []string{
					itoa(m.UserID), m.Name, strconv.Itoa(m.Age), m.Phone, m.Position,
					strconv.Itoa(m.Evaluate), m.Experience, m.Post, itoa(m.HourPay), m.JoinCompanyDay,
				})
			}
			renderTable(a.out, []string{"ID", "NAME", "AGE", "PHONE", "POSITION", "EVAL", "EXPERIENCE", "POST", "PAY", "JOINED"}, rows)
			return nil
		},
	}
}

func (a *app) crewCreateCmd() *cobra.Command {
	var (
		email, password string
		profile         profileFlags
	)
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a crew account and profile",
		Example: `  shiftctl crew create --email hana@example.com --password secret1 --name Hana --phone 090-1234-5678 --joined 2024-04-01`,
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

			m := services.CrewMember{Evaluate: profile.evaluate, Experience: profile.experience, Post: profile.post}
			profile.apply(cmd.Flags(), &m)

			created, err := a.crew.Create(ctx, services.CrewCreateRequest{
				CompanyID:      companyID,
				Email:          email,
				Password:       password,
				Name:           m.Name,
				Age:            m.Age,
				Phone:          m.Phone,
				Position:       m.Position,
				Evaluate:       m.Evaluate,
				Experience:     m.Experience,
				JoinCompanyDay: m.JoinCompanyDay,
				HourPay:        m.HourPay,
				Post:           m.Post,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created crew member %d (%s)\n", created.UserID, created.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	profile.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) crewEditCmd() *cobra.Command {
	var (
		userID  int64
		profile profileFlags
	)
	cmd := &cobra.Command{
		Use:     "edit",
		Short:   "Change a crew profile",
		Long:    `Loads the member's current profile, applies the given flags and saves it.`,
		Example: `  shiftctl crew edit --user-id 7 --evaluate 4 --post employee`,
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
			members, err := a.crew.List(ctx, companyID)
			if err != nil {
				return err
			}

			var current *services.CrewMember
			for i := range members {
				if members[i].UserID == userID {
					current = &members[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("user %d is not in your crew", userID)
			}
			profile.apply(cmd.Flags(), current)

			err = a.crew.Update(ctx, services.CrewEditRequest{
				UserID:         userID,
				CompanyID:      companyID,
				Name:           current.Name,
				Age:            current.Age,
				Phone:          current.Phone,
				Position:       current.Position,
				Evaluate:       current.Evaluate,
				Experience:     current.Experience,
				JoinCompanyDay: current.JoinCompanyDay,
				HourPay:        current.HourPay,
				Post:           current.Post,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved crew member %d\n", userID)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 0, "crew member id")
	profile.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
