package appstate

import (
	"time"

	"develevate/pkg/schema"
)

// SeedDefaults returns the actions the dashboard dispatches on first load: a
// placeholder profile when none is set and sample news when the feed is empty.
func SeedDefaults(s State, now time.Time) []Action {
	var actions []Action

	if s.User == nil {
		actions = append(actions, SetUser{User: &schema.Profile{
			ID:          "1",
			Name:        "John Doe",
			Email:       "john@example.com",
			JoinDate:    now,
			Streak:      7,
			TotalPoints: 1250,
			Level:       "Intermediate",
		}})
	}

	if len(s.NewsItems) == 0 {
		published := now.Format(time.RFC3339)
		actions = append(actions, UpdateNews{Items: []schema.NewsItem{
			{
				ID:          "1",
				Title:       "React 18.3 Released with New Features",
				Summary:     "Latest React version brings performance improvements and new hooks",
				URL:         "#",
				PublishDate: published,
				Category:    schema.NewsTech,
			},
			{
				ID:          "2",
				Title:       "Google Summer Internship 2024",
				Summary:     "Applications open for software engineering internships",
				URL:         "#",
				PublishDate: published,
				Category:    schema.NewsInternships,
			},
			{
				ID:          "3",
				Title:       "AI/ML Engineer Positions at Microsoft",
				Summary:     "Multiple openings for machine learning specialists",
				URL:         "#",
				PublishDate: published,
				Category:    schema.NewsJobs,
			},
		}})
	}

	return actions
}

// DefaultResume is the blank document the résumé builder starts from.
func DefaultResume() schema.Resume {
	return schema.Resume{
		ID:         "1",
		Experience: []schema.Experience{},
		Education:  []schema.Education{},
		Projects:   []schema.Project{},
		Skills: schema.Skills{
			Technical: []string{},
			Soft:      []string{},
		},
	}
}

// InitResume returns the action that creates the blank résumé, or nil when a
// résumé already exists.
func InitResume(s State) Action {
	if s.Resume != nil {
		return nil
	}
	return UpdateResume{Resume: DefaultResume()}
}
