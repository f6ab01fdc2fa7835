// Command develevate drives the DevElevate learning dashboard from a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"develevate/internal/appstate"
	"develevate/internal/bootstrap"
	"develevate/internal/core"
	"develevate/internal/store"
)

// cli carries the global flags and the lazily opened application.
type cli struct {
	dataDir string
	storage string
	in      io.Reader
	app     *bootstrap.App
}

// open builds the application on first use. Flags override the config.
func (c *cli) open(cmd *cobra.Command) (*bootstrap.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg, err := core.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	if c.storage != "" {
		cfg.Storage = strings.ToLower(c.storage)
	}

	app, err := bootstrap.New(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	c.app = app
	cmd.SetContext(app.Context(cmd.Context()))
	return app, nil
}

// useState opens the application and binds to its application store through
// the command context.
func (c *cli) useState(cmd *cobra.Command) (store.Binding[appstate.State, appstate.Action], error) {
	if _, err := c.open(cmd); err != nil {
		return store.Binding[appstate.State, appstate.Action]{}, err
	}
	return appstate.Use(cmd.Context()), nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "develevate",
		Short: "Learning dashboard, daily goals and Study Buddy chat",
		Long: `DevElevate keeps your learning progress, daily goals, bookmarks and
Study Buddy conversations in a local data directory.

Quick Start:
  develevate register --name Asha --email asha@example.com --password secret1
  develevate goals add "Solve 2 DSA problems"
  develevate dashboard
  develevate chat "Explain Big O notation"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "Data directory (default from DEVELEVATE_DATA_DIR or .develevate)")
	root.PersistentFlags().StringVar(&c.storage, "storage", "", "Storage backend: file, sqlite or memory")

	root.AddCommand(
		newStateCmd(c),
		newDispatchCmd(c),
		newSchemaCmd(),
		newDashboardCmd(c),
		newGoalsCmd(c),
		newBookmarkCmd(c),
		newThemeCmd(c),
		newProgressCmd(c),
		newStreakCmd(c),
		newModuleCmd(c),
		newResumeCmd(c),
		newAssignmentsCmd(c),
		newNewsCmd(c),
		newChatCmd(c),
		newLoginCmd(c),
		newRegisterCmd(c),
		newLogoutCmd(c),
		newProfileCmd(c),
		newPasswordCmd(c),
		newUsersCmd(c),
	)

	return root
}

// execute runs one command line against in and out.
func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	c := &cli{in: in}
	defer func() {
		if err := c.close(); err != nil {
			fmt.Fprintf(errOut, "⚠️  Failed to close storage: %v\n", err)
		}
	}()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
