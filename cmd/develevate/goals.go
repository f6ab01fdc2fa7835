package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"develevate/internal/appstate"
	"develevate/pkg/schema"
)

func today() string {
	return time.Now().Format(schema.DateLayout)
}

func newGoalsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage today's goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listGoals(c, cmd)
		},
	}

	goalAction := func(use, short, done string, build func(string) appstate.Action) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <goal>",
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				goal := strings.Join(args, " ")
				if err := schema.ValidateGoal(goal); err != nil {
					return err
				}
				b, err := c.useState(cmd)
				if err != nil {
					return err
				}
				b.Dispatch(build(goal))
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", done, goal)
				return nil
			},
		}
	}

	cmd.AddCommand(
		goalAction("add", "Add a goal for today", "🎯 Added:", func(g string) appstate.Action {
			return appstate.AddDailyGoal{Goal: g}
		}),
		goalAction("done", "Mark a goal as completed", "✅ Completed:", func(g string) appstate.Action {
			return appstate.CompleteDailyGoal{Goal: g}
		}),
		goalAction("rm", "Remove a goal", "🗑️  Removed:", func(g string) appstate.Action {
			return appstate.RemoveGoal{Goal: g}
		}),
		&cobra.Command{
			Use:   "list",
			Short: "List pending and completed goals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listGoals(c, cmd)
			},
		},
	)

	return cmd
}

func listGoals(c *cli, cmd *cobra.Command) error {
	b, err := c.useState(cmd)
	if err != nil {
		return err
	}

	s := b.State
	out := cmd.OutOrStdout()
	if len(s.DailyGoals) == 0 && len(s.CompletedGoals) == 0 {
		fmt.Fprintln(out, "No goals yet. Add one with: develevate goals add <goal>")
		return nil
	}
	for _, g := range s.DailyGoals {
		fmt.Fprintf(out, "  [ ] %s\n", g)
	}
	for _, g := range s.CompletedGoals {
		fmt.Fprintf(out, "  [x] %s\n", g)
	}
	fmt.Fprintf(out, "%d/%d completed\n", len(s.CompletedGoals), len(s.DailyGoals)+len(s.CompletedGoals))
	return nil
}

func newBookmarkCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmark <id>",
		Short: "Toggle a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.useState(cmd)
			if err != nil {
				return err
			}

			id := args[0]
			b.Dispatch(appstate.ToggleBookmark(b.State, id))

			if appstate.Use(cmd.Context()).State.IsBookmarked(id) {
				fmt.Fprintf(cmd.OutOrStdout(), "🔖 Bookmarked %s\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %s\n", id)
			}
			return nil
		},
	}
}

func newThemeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.useState(cmd)
			if err != nil {
				return err
			}

			b.Dispatch(appstate.ToggleDarkMode{})
			if appstate.Use(cmd.Context()).State.DarkMode {
				fmt.Fprintln(cmd.OutOrStdout(), "🌙 Dark mode on")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "☀️  Light mode on")
			}
			return nil
		},
	}
}

func newProgressCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <topic> <module> <percent>",
		Short: "Record progress on a learning module",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, module := strings.TrimSpace(args[0]), args[1]
			if topic == "" {
				return fmt.Errorf("topic is required")
			}
			if err := schema.ValidateModuleID(module); err != nil {
				return err
			}
			percent, err := strconv.Atoi(strings.TrimSuffix(args[2], "%"))
			if err != nil {
				return fmt.Errorf("invalid percent %q: %w", args[2], err)
			}
			if err := schema.ValidateProgress(percent); err != nil {
				return fmt.Errorf("progress %w", err)
			}

			b, err := c.useState(cmd)
			if err != nil {
				return err
			}
			b.Dispatch(appstate.UpdateLearningProgress{Topic: topic, ModuleID: module, Progress: percent})

			fmt.Fprintf(cmd.OutOrStdout(), "📈 %s/%s: %d%%\n", topic, module, percent)
			return nil
		},
	}
}

func newStreakCmd(c *cli) *cobra.Command {
	var missed bool

	cmd := &cobra.Command{
		Use:   "streak [date]",
		Short: "Mark a day (default today) as completed or missed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := today()
			if len(args) == 1 {
				date = args[0]
			}
			if err := schema.ValidateDate(date); err != nil {
				return err
			}

			b, err := c.useState(cmd)
			if err != nil {
				return err
			}
			b.Dispatch(appstate.UpdateStreak{Date: date, Completed: !missed})

			streak := appstate.Use(cmd.Context()).State.CurrentStreak(today())
			fmt.Fprintf(cmd.OutOrStdout(), "🔥 Current streak: %d days\n", streak)
			return nil
		},
	}
	cmd.Flags().BoolVar(&missed, "missed", false, "Mark the day as missed")

	return cmd
}

func newModuleCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "module <id>",
		Short: "Switch the current module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := schema.ValidateModuleID(args[0]); err != nil {
				return err
			}
			b, err := c.useState(cmd)
			if err != nil {
				return err
			}
			b.Dispatch(appstate.SetCurrentModule{Module: args[0]})
			fmt.Fprintf(cmd.OutOrStdout(), "➡️  %s\n", args[0])
			return nil
		},
	}
}
