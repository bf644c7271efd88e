package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/teamboard/internal/config"
	"github.com/balkashynov/teamboard/internal/logging"
	"github.com/balkashynov/teamboard/internal/models"
	"github.com/balkashynov/teamboard/internal/seed"
	"github.com/balkashynov/teamboard/internal/store"
	"github.com/balkashynov/teamboard/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// clock is the session time source; tests pin it
var clock = time.Now

var rootCmd = &cobra.Command{
	Use:   "teamboard",
	Short: "A team task board for the terminal",
	Long: `teamboard is a kanban board for small teams.
Track tasks across To Do, In Progress and Done, see due dates on a calendar,
review your week in a timesheet and leave feedback for teammates.

Run without a subcommand to open the interactive board.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		return tui.RunBoardTUI(sess.store, sess.cfg.WeekStart)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "teamboard %s (commit %s, built %s)\n", version, commit, date)
	},
}

// session is one seeded board session for the active identity
type session struct {
	store *store.Store
	cfg   config.Config
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession resolves config, starts logging and loads a freshly seeded store
func openSession(cmd *cobra.Command) (*session, error) {
	envPath, _ := cmd.Flags().GetString("env")
	cfg, err := config.Load(envPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("as") {
		cfg.Identity, _ = cmd.Flags().GetString("as")
	}

	if err := logging.InitLogger(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel}); err != nil {
		return nil, err
	}

	return newSession(cfg, clock)
}

func newSession(cfg config.Config, now func() time.Time) (*session, error) {
	st, err := store.Open(store.Options{Now: now, Logger: logging.Logger})
	if err != nil {
		return nil, err
	}

	data := seed.Fixture(st.Now())
	if err := st.Load(data.Members, data.Tasks, data.Feedback); err != nil {
		st.Close()
		return nil, err
	}
	identity := models.ParseIdentity(cfg.Identity)
	if identity.IsMember() {
		if _, err := st.Member(identity.ID()); err != nil {
			st.Close()
			return nil, fmt.Errorf("cannot act as %q: %w", identity.ID(), err)
		}
	}
	st.SetIdentity(identity)

	return &session{store: st, cfg: cfg}, nil
}

// withSession wraps a command function with session setup and teardown
func withSession(fn func(*cobra.Command, []string, *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		return fn(cmd, args, sess)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("as", "", "Act as identity: a member id, \"guest\", or \"\" for signed out")
	rootCmd.PersistentFlags().String("env", ".env", "Path to a dotenv config file")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(timesheetCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
