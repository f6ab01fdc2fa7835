package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"develevate/internal/appstate"
	"develevate/internal/store"
	"develevate/pkg/schema"
)

func newResumeCmd(c *cli) *cobra.Command {
	var asJSON bool

	show := func(cmd *cobra.Command, args []string) error {
		_, r, err := c.loadResume(cmd)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), r)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderResume(r))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Build your résumé section by section",
		Long: `Build your résumé section by section. The first use creates a blank
résumé; every edit replaces the whole document.

Examples:
  develevate resume set personal --name Asha --email asha@example.com
  develevate resume add experience --company Acme --position Intern --bullet "Built the CLI"
  develevate resume add skill Go TypeScript
  develevate resume rm experience 1`,
		Args: cobra.NoArgs,
		RunE: show,
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print the résumé as JSON")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the résumé",
			Args:  cobra.NoArgs,
			RunE:  show,
		},
		newResumeSetCmd(c),
		newResumeAddCmd(c),
		newResumeRmCmd(c),
	)

	return cmd
}

// loadResume returns the current résumé, creating the blank one on first use.
func (c *cli) loadResume(cmd *cobra.Command) (store.Binding[appstate.State, appstate.Action], *schema.Resume, error) {
	b, err := c.useState(cmd)
	if err != nil {
		return b, nil, err
	}
	if create := appstate.InitResume(b.State); create != nil {
		b.Dispatch(create)
		b = appstate.Use(cmd.Context())
	}
	return b, b.State.Resume, nil
}

// editResume applies edit to a copy of the current résumé and replaces the
// stored document with it.
func (c *cli) editResume(cmd *cobra.Command, edit func(r *schema.Resume) error) error {
	b, current, err := c.loadResume(cmd)
	if err != nil {
		return err
	}

	next := current.Clone()
	if err := edit(next); err != nil {
		return err
	}
	if err := schema.ValidateResume(next); err != nil {
		return err
	}

	b.Dispatch(appstate.UpdateResume{Resume: *next})
	return nil
}

func newResumeSetCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the personal info, summary or skills",
	}

	var info schema.PersonalInfo
	personal := &cobra.Command{
		Use:   "personal",
		Short: "Set personal info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.editResume(cmd, func(r *schema.Resume) error {
				fields := []struct {
					flag     string
					src, dst *string
				}{
					{"name", &info.Name, &r.PersonalInfo.Name},
					{"email", &info.Email, &r.PersonalInfo.Email},
					{"phone", &info.Phone, &r.PersonalInfo.Phone},
					{"location", &info.Location, &r.PersonalInfo.Location},
					{"linkedin", &info.LinkedIn, &r.PersonalInfo.LinkedIn},
					{"github", &info.GitHub, &r.PersonalInfo.GitHub},
				}
				changed := false
				for _, f := range fields {
					if cmd.Flags().Changed(f.flag) {
						*f.dst = strings.TrimSpace(*f.src)
						changed = true
					}
				}
				if !changed {
					return fmt.Errorf("nothing to update: pass at least one of --name, --email, --phone, --location, --linkedin, --github")
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "📝 Personal info updated")
			return nil
		},
	}
	personal.Flags().StringVar(&info.Name, "name", "", "Full name")
	personal.Flags().StringVar(&info.Email, "email", "", "Email address")
	personal.Flags().StringVar(&info.Phone, "phone", "", "Phone number")
	personal.Flags().StringVar(&info.Location, "location", "", "City, country")
	personal.Flags().StringVar(&info.LinkedIn, "linkedin", "", "LinkedIn profile URL")
	personal.Flags().StringVar(&info.GitHub, "github", "", "GitHub profile URL")

	summary := &cobra.Command{
		Use:   "summary <text>",
		Short: "Set the professional summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			err := c.editResume(cmd, func(r *schema.Resume) error {
				r.Summary = text
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "📝 Summary updated")
			return nil
		},
	}

	var technical, soft []string
	skills := &cobra.Command{
		Use:   "skills",
		Short: "Replace the technical and soft skill lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("technical") && !cmd.Flags().Changed("soft") {
				return fmt.Errorf("nothing to update: pass --technical or --soft")
			}
			err := c.editResume(cmd, func(r *schema.Resume) error {
				if cmd.Flags().Changed("technical") {
					r.Skills.Technical = cleanList(technical)
				}
				if cmd.Flags().Changed("soft") {
					r.Skills.Soft = cleanList(soft)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "📝 Skills updated")
			return nil
		},
	}
	skills.Flags().StringSliceVar(&technical, "technical", nil, "Technical skills, comma separated")
	skills.Flags().StringSliceVar(&soft, "soft", nil, "Soft skills, comma separated")

	cmd.AddCommand(personal, summary, skills)
	return cmd
}

func newResumeAddCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an experience, education, project or skill entry",
	}

	var exp schema.Experience
	experience := &cobra.Command{
		Use:   "experience",
		Short: "Add a work experience entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := exp
			entry.Description = cleanList(exp.Description)
			err := c.editResume(cmd, func(r *schema.Resume) error {
				r.Experience = append(r.Experience, entry)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "💼 Added %s at %s\n", entry.Position, entry.Company)
			return nil
		},
	}
	experience.Flags().StringVar(&exp.Company, "company", "", "Company name")
	experience.Flags().StringVar(&exp.Position, "position", "", "Job title")
	experience.Flags().StringVar(&exp.Duration, "duration", "", "For example Jan 2024 - Present")
	experience.Flags().StringArrayVar(&exp.Description, "bullet", nil, "Achievement line (repeatable)")

	var edu schema.Education
	education := &cobra.Command{
		Use:   "education",
		Short: "Add an education entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := edu
			err := c.editResume(cmd, func(r *schema.Resume) error {
				r.Education = append(r.Education, entry)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🎓 Added %s, %s\n", entry.Degree, entry.Institution)
			return nil
		},
	}
	education.Flags().StringVar(&edu.Institution, "institution", "", "School or university")
	education.Flags().StringVar(&edu.Degree, "degree", "", "Degree or certificate")
	education.Flags().StringVar(&edu.Duration, "duration", "", "For example 2021 - 2025")
	education.Flags().StringVar(&edu.GPA, "gpa", "", "Grade point average")

	var proj schema.Project
	project := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Add a project entry",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := proj
			entry.Technologies = cleanList(proj.Technologies)
			err := c.editResume(cmd, func(r *schema.Resume) error {
				r.Projects = append(r.Projects, entry)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🚀 Added project %s\n", entry.Name)
			return nil
		},
	}
	project.Flags().StringVar(&proj.Name, "name", "", "Project name")
	project.Flags().StringVar(&proj.Description, "description", "", "What it does")
	project.Flags().StringSliceVar(&proj.Technologies, "tech", nil, "Technologies used, comma separated")
	project.Flags().StringVar(&proj.URL, "url", "", "Link to the project")

	var softSkill bool
	skill := &cobra.Command{
		Use:     "skill <skill>...",
		Aliases: []string{"skills"},
		Short:   "Add technical (or --soft) skills",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.editResume(cmd, func(r *schema.Resume) error {
				list := &r.Skills.Technical
				if softSkill {
					list = &r.Skills.Soft
				}
				for _, s := range cleanList(args) {
					if !slices.Contains(*list, s) {
						*list = append(*list, s)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🛠️  Added %s\n", strings.Join(args, ", "))
			return nil
		},
	}
	skill.Flags().BoolVar(&softSkill, "soft", false, "Add to soft skills")

	cmd.AddCommand(experience, education, project, skill)
	return cmd
}

func newResumeRmCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove an entry by its position, or a skill by name",
	}

	removeAt := func(use, label string, remove func(r *schema.Resume, i int) bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <n>",
			Short: "Remove the n-th " + label + " entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid position %q: must be a number from 1", args[0])
				}
				err = c.editResume(cmd, func(r *schema.Resume) error {
					if !remove(r, n-1) {
						return fmt.Errorf("no %s entry %d", label, n)
					}
					return nil
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed %s %d\n", label, n)
				return nil
			},
		}
	}

	var softSkill bool
	skill := &cobra.Command{
		Use:   "skill <skill>",
		Short: "Remove a technical (or --soft) skill",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			err := c.editResume(cmd, func(r *schema.Resume) error {
				list := &r.Skills.Technical
				if softSkill {
					list = &r.Skills.Soft
				}
				if !slices.Contains(*list, name) {
					return fmt.Errorf("skill %q not found", name)
				}
				*list = slices.DeleteFunc(*list, func(s string) bool { return s == name })
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed %s\n", name)
			return nil
		},
	}
	skill.Flags().BoolVar(&softSkill, "soft", false, "Remove from soft skills")

	cmd.AddCommand(
		removeAt("experience", "experience", func(r *schema.Resume, i int) bool {
			return deleteAt(&r.Experience, i)
		}),
		removeAt("education", "education", func(r *schema.Resume, i int) bool {
			return deleteAt(&r.Education, i)
		}),
		removeAt("project", "project", func(r *schema.Resume, i int) bool {
			return deleteAt(&r.Projects, i)
		}),
		skill,
	)
	return cmd
}

func deleteAt[E any](list *[]E, i int) bool {
	if i < 0 || i >= len(*list) {
		return false
	}
	*list = slices.Delete(*list, i, i+1)
	return true
}

// cleanList trims items and drops blanks.
func cleanList(items []string) []string {
	out := []string{}
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func renderResume(r *schema.Resume) string {
	name := r.PersonalInfo.Name
	if name == "" {
		name = "Your Name"
	}
	sections := []string{titleStyle.Render(name)}

	var contact []string
	for _, v := range []string{r.PersonalInfo.Email, r.PersonalInfo.Phone, r.PersonalInfo.Location, r.PersonalInfo.LinkedIn, r.PersonalInfo.GitHub} {
		if v != "" {
			contact = append(contact, v)
		}
	}
	if len(contact) > 0 {
		sections = append(sections, mutedStyle.Render(strings.Join(contact, "  •  ")))
	}

	section := func(title, empty string, lines []string) string {
		if len(lines) == 0 {
			lines = []string{mutedStyle.Render(empty)}
		}
		return panelStyle.Render(strings.Join(append([]string{headerStyle.Render(title)}, lines...), "\n"))
	}

	var summary []string
	if r.Summary != "" {
		summary = []string{r.Summary}
	}
	sections = append(sections, section("Summary", "No summary yet", summary))

	var exp []string
	for i, e := range r.Experience {
		exp = append(exp, fmt.Sprintf("%d. %s at %s %s", i+1, e.Position, e.Company, mutedStyle.Render(e.Duration)))
		for _, d := range e.Description {
			exp = append(exp, "   • "+d)
		}
	}
	sections = append(sections, section("Experience", "No experience yet", exp))

	var edu []string
	for i, e := range r.Education {
		line := fmt.Sprintf("%d. %s, %s %s", i+1, e.Degree, e.Institution, mutedStyle.Render(e.Duration))
		if e.GPA != "" {
			line += " GPA " + e.GPA
		}
		edu = append(edu, line)
	}
	sections = append(sections, section("Education", "No education yet", edu))

	var projects []string
	for i, p := range r.Projects {
		line := fmt.Sprintf("%d. %s", i+1, p.Name)
		if p.Description != "" {
			line += ": " + p.Description
		}
		if len(p.Technologies) > 0 {
			line += " " + mutedStyle.Render("["+strings.Join(p.Technologies, ", ")+"]")
		}
		projects = append(projects, line)
	}
	sections = append(sections, section("Projects", "No projects yet", projects))

	var skills []string
	if len(r.Skills.Technical) > 0 {
		skills = append(skills, "Technical: "+strings.Join(r.Skills.Technical, ", "))
	}
	if len(r.Skills.Soft) > 0 {
		skills = append(skills, "Soft: "+strings.Join(r.Skills.Soft, ", "))
	}
	sections = append(sections, section("Skills", "No skills yet", skills))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
