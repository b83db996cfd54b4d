package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/takt/pkg/config"
	"github.com/harrisonrobin/takt/pkg/logging"
	"github.com/harrisonrobin/takt/pkg/session"
)

// DefaultPlanFile is where the working plan lives unless --plan says otherwise.
const DefaultPlanFile = "takt-plan.json"

var (
	cfgPath  string
	planPath string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "takt",
	Short:         "Import construction schedules, chart them and push them to Google Calendar",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (default ~/.config/takt/config.json)")
	rootCmd.PersistentFlags().StringVarP(&planPath, "plan", "p", DefaultPlanFile, "working plan file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// env carries what every command needs.
type env struct {
	cfg   *config.Config
	log   logging.Logger
	store *session.Store
}

func setup(component string) (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return &env{
		cfg:   cfg,
		log:   logging.New(component, level),
		store: session.NewStore(planPath),
	}, nil
}

// plan returns the saved plan, or an unsaved sample plan when nothing has
// been imported yet.
func (e *env) plan() (*session.Plan, error) {
	p, err := e.store.Load()
	if errors.Is(err, session.ErrNoPlan) {
		e.log.Debugf("no plan at %s, using the sample plan", e.store.Path)
		return session.SamplePlan(), nil
	}
	return p, err
}
