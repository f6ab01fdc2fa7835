package appstate

import (
	"time"

	"develevate/internal/store"
	"develevate/pkg/schema"
)

// Action tags.
const (
	TypeSetUser                = "SET_USER"
	TypeUpdateLearningProgress = "UPDATE_LEARNING_PROGRESS"
	TypeAddChatMessage         = "ADD_CHAT_MESSAGE"
	TypeAddBookmark            = "ADD_BOOKMARK"
	TypeRemoveBookmark         = "REMOVE_BOOKMARK"
	TypeAddAssignment          = "ADD_ASSIGNMENT"
	TypeCompleteAssignment     = "COMPLETE_ASSIGNMENT"
	TypeUpdateNews             = "UPDATE_NEWS"
	TypeUpdateResume           = "UPDATE_RESUME"
	TypeToggleDarkMode         = "TOGGLE_DARK_MODE"
	TypeSetCurrentModule       = "SET_CURRENT_MODULE"
	TypeAddDailyGoal           = "ADD_DAILY_GOAL"
	TypeCompleteDailyGoal      = "COMPLETE_DAILY_GOAL"
	TypeRemoveGoal             = "REMOVE_GOAL"
	TypeUpdateStreak           = "UPDATE_STREAK"
	TypeHydrate                = "HYDRATE_STATE"
)

// Action is the closed set of application transitions.
type Action interface {
	store.Action
	isAppAction()
}

// SetUser replaces the profile. A nil User clears it.
type SetUser struct {
	User *schema.Profile
}

// UpdateLearningProgress records progress on one module of a topic.
// At is the access time; the zero value means "now" by the reducer's clock.
type UpdateLearningProgress struct {
	Topic    string    `json:"topic"`
	ModuleID string    `json:"moduleId"`
	Progress int       `json:"progress"`
	At       time.Time `json:"at,omitzero"`
}

// AddChatMessage appends to the Study Buddy history.
type AddChatMessage struct {
	Message schema.ChatMessage
}

// AddBookmark adds id to the bookmark set.
type AddBookmark struct {
	ID string
}

// RemoveBookmark removes id from the bookmark set.
type RemoveBookmark struct {
	ID string
}

// AddAssignment appends an assignment.
type AddAssignment struct {
	Assignment schema.Assignment
}

// CompleteAssignment marks the assignment with ID completed.
type CompleteAssignment struct {
	ID string
}

// UpdateNews replaces the news list.
type UpdateNews struct {
	Items []schema.NewsItem
}

// UpdateResume replaces the résumé document.
type UpdateResume struct {
	Resume schema.Resume
}

// ToggleDarkMode flips the theme flag.
type ToggleDarkMode struct{}

// SetCurrentModule records navigation to a module.
type SetCurrentModule struct {
	Module string
}

// AddDailyGoal adds a pending goal.
type AddDailyGoal struct {
	Goal string
}

// CompleteDailyGoal moves a goal from pending to completed.
type CompleteDailyGoal struct {
	Goal string
}

// RemoveGoal drops a goal from both lists.
type RemoveGoal struct {
	Goal string
}

// UpdateStreak marks a day (YYYY-MM-DD) as completed or missed.
type UpdateStreak struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Hydrate merges a persisted snapshot over the current state.
type Hydrate struct {
	Fields store.Fields
}

// Unknown is an action with a tag this vocabulary does not define.
type Unknown struct {
	Type string
}

func (SetUser) ActionType() string                { return TypeSetUser }
func (UpdateLearningProgress) ActionType() string { return TypeUpdateLearningProgress }
func (AddChatMessage) ActionType() string         { return TypeAddChatMessage }
func (AddBookmark) ActionType() string            { return TypeAddBookmark }
func (RemoveBookmark) ActionType() string         { return TypeRemoveBookmark }
func (AddAssignment) ActionType() string          { return TypeAddAssignment }
func (CompleteAssignment) ActionType() string     { return TypeCompleteAssignment }
func (UpdateNews) ActionType() string             { return TypeUpdateNews }
func (UpdateResume) ActionType() string           { return TypeUpdateResume }
func (ToggleDarkMode) ActionType() string         { return TypeToggleDarkMode }
func (SetCurrentModule) ActionType() string       { return TypeSetCurrentModule }
func (AddDailyGoal) ActionType() string           { return TypeAddDailyGoal }
func (CompleteDailyGoal) ActionType() string      { return TypeCompleteDailyGoal }
func (RemoveGoal) ActionType() string             { return TypeRemoveGoal }
func (UpdateStreak) ActionType() string           { return TypeUpdateStreak }
func (Hydrate) ActionType() string                { return TypeHydrate }
func (a Unknown) ActionType() string              { return a.Type }

func (SetUser) isAppAction()                {}
func (UpdateLearningProgress) isAppAction() {}
func (AddChatMessage) isAppAction()         {}
func (AddBookmark) isAppAction()            {}
func (RemoveBookmark) isAppAction()         {}
func (AddAssignment) isAppAction()          {}
func (CompleteAssignment) isAppAction()     {}
func (UpdateNews) isAppAction()             {}
func (UpdateResume) isAppAction()           {}
func (ToggleDarkMode) isAppAction()         {}
func (SetCurrentModule) isAppAction()       {}
func (AddDailyGoal) isAppAction()           {}
func (CompleteDailyGoal) isAppAction()      {}
func (RemoveGoal) isAppAction()             {}
func (UpdateStreak) isAppAction()           {}
func (Hydrate) isAppAction()                {}
func (Unknown) isAppAction()                {}

// ToggleBookmark returns the action that flips id's membership in s.
func ToggleBookmark(s State, id string) Action {
	if s.IsBookmarked(id) {
		return RemoveBookmark{ID: id}
	}
	return AddBookmark{ID: id}
}
