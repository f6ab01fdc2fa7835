package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"develevate/internal/appstate"
	"develevate/pkg/schema"
)

func newAssignmentsCmd(c *cli) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		b, err := c.useState(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(b.State.Assignments) == 0 {
			fmt.Fprintln(out, "No assignments yet. Add one with: develevate assignments add --title <title>")
			return nil
		}
		points := 0
		for _, a := range b.State.Assignments {
			mark := "[ ]"
			if a.Completed {
				mark = "[x]"
				points += a.Points
			}
			due := ""
			if a.DueDate != "" {
				due = mutedStyle.Render(" due " + a.DueDate)
			}
			fmt.Fprintf(out, "  %s %s  %s (%d pts)%s\n", mark, a.ID, a.Title, a.Points, due)
		}
		fmt.Fprintf(out, "%d points earned\n", points)
		return nil
	}

	cmd := &cobra.Command{
		Use:     "assignments",
		Aliases: []string{"assignment"},
		Short:   "Track assignments and their points",
		Args:    cobra.NoArgs,
		RunE:    list,
	}

	var asg schema.Assignment
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an assignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := asg
			entry.Title = strings.TrimSpace(entry.Title)
			if err := schema.ValidateAssignment(&entry); err != nil {
				return err
			}
			id, err := schema.NewAssignmentID()
			if err != nil {
				return fmt.Errorf("generate assignment id: %w", err)
			}
			entry.ID = id

			b, err := c.useState(cmd)
			if err != nil {
				return err
			}
			b.Dispatch(appstate.AddAssignment{Assignment: entry})
			fmt.Fprintf(cmd.OutOrStdout(), "📋 Added %s (%s)\n", entry.Title, entry.ID)
			return nil
		},
	}
	add.Flags().StringVar(&asg.Title, "title", "", "Assignment title")
	add.Flags().StringVar(&asg.Description, "description", "", "Details")
	add.Flags().StringVar(&asg.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	add.Flags().IntVar(&asg.Points, "points", 10, "Points awarded on completion")
	add.Flags().StringVar(&asg.Category, "category", "", "For example dsa or web")

	done := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark an assignment as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.useState(cmd)
			if err != nil {
				return err
			}
			id := args[0]
			if !slices.ContainsFunc(b.State.Assignments, func(a schema.Assignment) bool { return a.ID == id }) {
				return fmt.Errorf("assignment %s not found", id)
			}
			b.Dispatch(appstate.CompleteAssignment{ID: id})
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Completed %s\n", id)
			return nil
		},
	}

	cmd.AddCommand(add, done, &cobra.Command{
		Use:   "list",
		Short: "List assignments",
		Args:  cobra.NoArgs,
		RunE:  list,
	})
	return cmd
}

func newNewsCmd(c *cli) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		b, err := c.useState(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(b.State.NewsItems) == 0 {
			fmt.Fprintln(out, "No news yet")
			return nil
		}
		for _, item := range b.State.NewsItems {
			fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("["+string(item.Category)+"]"), item.Title)
		}
		return nil
	}

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show or post to the tech feed",
		Args:  cobra.NoArgs,
		RunE:  list,
	}

	var item schema.NewsItem
	var category string
	post := &cobra.Command{
		Use:   "add",
		Short: "Post an item to the top of the feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := item
			entry.Title = strings.TrimSpace(entry.Title)
			if entry.Title == "" {
				return fmt.Errorf("title is required")
			}
			entry.Category = schema.NewsCategory(category)
			if err := schema.ValidateNewsCategory(entry.Category); err != nil {
				return err
			}
			id, err := schema.NewNewsID()
			if err != nil {
				return fmt.Errorf("generate news id: %w", err)
			}
			entry.ID = id
			entry.PublishDate = time.Now().UTC().Format(time.RFC3339)

			b, err := c.useState(cmd)
			if err != nil {
				return err
			}
			b.Dispatch(appstate.UpdateNews{Items: append([]schema.NewsItem{entry}, b.State.NewsItems...)})
			fmt.Fprintf(cmd.OutOrStdout(), "📰 Posted %s\n", entry.Title)
			return nil
		},
	}
	post.Flags().StringVar(&item.Title, "title", "", "Headline")
	post.Flags().StringVar(&item.Summary, "summary", "", "One-line summary")
	post.Flags().StringVar(&item.URL, "url", "#", "Link")
	post.Flags().StringVar(&category, "category", string(schema.NewsTech), "tech, jobs, internships or events")

	cmd.AddCommand(post)
	return cmd
}
