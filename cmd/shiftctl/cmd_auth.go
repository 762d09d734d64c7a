package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shift-agent/shift-agent/internal/client/services"
)

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Signs in with email and password and stores the session in the
credentials file. The password is read from stdin when --password is omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if password == "" {
				fmt.Fprint(a.errOut, "Password: ")
				line, err := bufio.NewReader(a.in).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			sess, err := a.auth.Login(ctx, email, password)
			if err != nil {
				return err
			}
			// profile lookup only fills the display cache
			if _, err := a.auth.Me(ctx); err != nil {
				a.logger.Debug("profile lookup after login failed", zap.Error(err))
			}

			fmt.Fprintf(a.out, "Logged in as %s (user %s, company %s)\n", sess.Role, sess.UserID, sess.CompanyID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, ok := a.sessions.Session(ctx)
			if !ok {
				return services.ErrNotLoggedIn
			}

			info, cached := a.sessions.CachedUserInfo(ctx)
			if !cached {
				me, err := a.auth.Me(ctx)
				if err != nil {
					return err
				}
				info.Name, info.Email, info.Position, info.Post = me.Name, me.Email, me.Position, me.Post
			}

			renderTable(a.out, []string{"FIELD", "VALUE"}, [][]string{
				{"user_id", sess.UserID},
				{"company_id", sess.CompanyID},
				{"role", string(sess.Role)},
				{"email", info.Email},
				{"name", info.Name},
				{"position", info.Position},
				{"post", info.Post},
				{"expires", sess.ExpiresAt.Local().Format("2006-01-02 15:04")},
			})
			return nil
		},
	}
}
