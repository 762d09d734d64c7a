package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shift-agent/shift-agent/config"
	"github.com/shift-agent/shift-agent/internal/client/apiclient"
	"github.com/shift-agent/shift-agent/internal/client/services"
	"github.com/shift-agent/shift-agent/internal/client/session"
	"github.com/shift-agent/shift-agent/internal/logging"
)

// app holds what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	baseURL     string
	credentials string
	verbose     bool

	logger   *zap.Logger
	sessions *session.Manager
	auth     *services.AuthService
	store    *services.StoreService
	crew     *services.CrewService
	shifts   *services.ShiftService
	gemini   *services.GeminiService
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		renderError(errOut, err)
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shiftctl",
		Short: "Manage store shifts from the command line",
		Long: `shiftctl talks to the shift-agent API.

Owners maintain the store profile and crew, adjust draft shifts and publish
them. Crew members submit the windows they can work and read the published
schedule.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.baseURL, "api-url", "", "API base URL (default $SHIFT_API_BASE_URL)")
	root.PersistentFlags().StringVar(&a.credentials, "credentials", "", "credentials file (default $SHIFT_CREDENTIALS_FILE)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.storeCmd(),
		a.crewCmd(),
		a.shiftCmd(),
		a.aiCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	if a.credentials != "" {
		cfg.CredentialsFile = a.credentials
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel, "development")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	a.sessions = session.NewManager(session.NewFileStore(cfg.CredentialsFile))
	client := apiclient.New(cfg.BaseURL, a.sessions,
		apiclient.WithTimeouts(cfg.Timeout, cfg.LongTimeout),
		apiclient.WithLogger(logger),
		apiclient.WithAuthFailureHook(func(_ context.Context, aerr *apiclient.AuthError) {
			logger.Debug("session cleared", zap.String("reason", string(aerr.Reason)), zap.String("path", aerr.Path))
		}),
	)

	a.auth = services.NewAuthService(client)
	a.store = services.NewStoreService(client)
	a.crew = services.NewCrewService(client)
	a.shifts = services.NewShiftService(client)
	a.gemini = services.NewGeminiService(client)
	return nil
}

func (a *app) companyID(ctx context.Context) (int64, error) {
	return services.CompanyID(ctx, a.sessions)
}

// requireRole fails early when the stored session has another role. The
// server enforces the same rule.
func (a *app) requireRole(ctx context.Context, role session.Role) error {
	sess, ok := a.sessions.Session(ctx)
	if !ok {
		return services.ErrNotLoggedIn
	}
	if sess.Role != role {
		return fmt.Errorf("this command is for %s accounts, you are logged in as %s", role, sess.Role)
	}
	return nil
}
