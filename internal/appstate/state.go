// Package appstate holds the application store: profile, learning progress,
// Study Buddy history, bookmarks, assignments, news, résumé, theme, navigation,
// daily goals and streaks.
package appstate

import (
	"slices"

	"develevate/pkg/schema"
)

// Slot is the storage key of the persisted application state.
const Slot = "devElevateState"

// DefaultModule is the module shown before any navigation.
const DefaultModule = "dashboard"

// State is the application state tree.
type State struct {
	User             *schema.Profile         `json:"user"`
	LearningProgress schema.LearningProgress `json:"learningProgress"`
	ChatHistory      []schema.ChatMessage    `json:"chatHistory"`
	Bookmarks        []string                `json:"bookmarks"`
	Assignments      []schema.Assignment     `json:"assignments"`
	NewsItems        []schema.NewsItem       `json:"newsItems"`
	Resume           *schema.Resume          `json:"resume"`
	DarkMode         bool                    `json:"darkMode"`
	CurrentModule    string                  `json:"currentModule"`
	DailyGoals       []string                `json:"dailyGoals"`
	CompletedGoals   []string                `json:"completedGoals"`
	StreakData       map[string]bool         `json:"streakData"`
}

// Initial returns the compiled-in starting state.
func Initial() State {
	return State{
		LearningProgress: schema.LearningProgress{},
		ChatHistory:      []schema.ChatMessage{},
		Bookmarks:        []string{},
		Assignments:      []schema.Assignment{},
		NewsItems:        []schema.NewsItem{},
		CurrentModule:    DefaultModule,
		DailyGoals:       []string{},
		CompletedGoals:   []string{},
		StreakData:       map[string]bool{},
	}
}

// IsBookmarked reports whether id is bookmarked.
func (s State) IsBookmarked(id string) bool {
	return slices.Contains(s.Bookmarks, id)
}

// CurrentStreak counts consecutive completed days ending at today (YYYY-MM-DD).
// A today that is not yet marked does not break the streak.
func (s State) CurrentStreak(today string) int {
	day, err := parseDate(today)
	if err != nil {
		return 0
	}

	if !s.StreakData[today] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for s.StreakData[day.Format(schema.DateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
