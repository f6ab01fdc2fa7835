package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"develevate/internal/appstate"
	"develevate/pkg/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Strikethrough(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func newDashboardCmd(c *cli) *cobra.Command {
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show profile, goals, learning progress and news",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd)
			if err != nil {
				return err
			}

			if !noSeed {
				for _, a := range appstate.SeedDefaults(app.State.GetState(), time.Now()) {
					app.State.Dispatch(a)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderDashboard(app.State.GetState(), today()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Do not fill in the sample profile and news")

	return cmd
}

func renderDashboard(s appstate.State, today string) string {
	var sections []string

	name := "there"
	if s.User != nil && s.User.Name != "" {
		name = s.User.Name
	}
	sections = append(sections, titleStyle.Render(fmt.Sprintf("Welcome back, %s! 👋", name)))

	stats := []string{
		fmt.Sprintf("🔥 %s day streak", countStyle.Render(fmt.Sprint(s.CurrentStreak(today)))),
	}
	if s.User != nil {
		stats = append(stats,
			fmt.Sprintf("⭐ %s points", countStyle.Render(fmt.Sprint(s.User.TotalPoints))),
			"🎓 "+s.User.Level,
		)
	}
	completed, total := s.LearningProgress.ModuleCount()
	stats = append(stats, fmt.Sprintf("📚 %d/%d modules", completed, total))
	sections = append(sections, strings.Join(stats, mutedStyle.Render("  •  ")))

	sections = append(sections,
		panelStyle.Render(renderGoals(s)),
		panelStyle.Render(renderProgress(s.LearningProgress)),
		panelStyle.Render(renderNews(s.NewsItems)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderGoals(s appstate.State) string {
	lines := []string{headerStyle.Render(fmt.Sprintf("Today's Goals (%d/%d)",
		len(s.CompletedGoals), len(s.DailyGoals)+len(s.CompletedGoals)))}

	if len(s.DailyGoals) == 0 && len(s.CompletedGoals) == 0 {
		return strings.Join(append(lines, mutedStyle.Render("No goals set for today")), "\n")
	}
	for _, g := range s.DailyGoals {
		lines = append(lines, "○ "+g)
	}
	for _, g := range s.CompletedGoals {
		lines = append(lines, "● "+doneStyle.Render(g))
	}
	return strings.Join(lines, "\n")
}

func renderProgress(lp schema.LearningProgress) string {
	lines := []string{headerStyle.Render("Learning Progress")}

	topics := lp.Topics()
	if len(topics) == 0 {
		return strings.Join(append(lines, mutedStyle.Render("Start a module to track progress")), "\n")
	}
	for _, topic := range topics {
		tp := lp[topic]
		sum, done := 0, 0
		for _, m := range tp.Modules {
			sum += m.Progress
			if m.Completed {
				done++
			}
		}
		avg := 0
		if len(tp.Modules) > 0 {
			avg = sum / len(tp.Modules)
		}
		lines = append(lines, fmt.Sprintf("%-12s %s %3d%%  %s",
			topic, progressBar(avg, 20), avg, mutedStyle.Render(fmt.Sprintf("%d/%d done", done, len(tp.Modules)))))
	}
	return strings.Join(lines, "\n")
}

func renderNews(items []schema.NewsItem) string {
	lines := []string{headerStyle.Render("Tech Feed")}

	if len(items) == 0 {
		return strings.Join(append(lines, mutedStyle.Render("No news yet")), "\n")
	}
	for i, item := range items {
		if i == 3 {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("… and %d more", len(items)-3)))
			break
		}
		lines = append(lines, fmt.Sprintf("%s %s", mutedStyle.Render("["+string(item.Category)+"]"), item.Title))
	}
	return strings.Join(lines, "\n")
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return countStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
