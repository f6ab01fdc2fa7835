package schema

import (
	"maps"
	"slices"
	"time"
)

// Profile is the user snapshot shown by the application shell.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Avatar      string    `json:"avatar,omitempty"`
	JoinDate    time.Time `json:"joinDate"`
	Streak      int       `json:"streak"`
	TotalPoints int       `json:"totalPoints"`
	Level       string    `json:"level"`
}

// ProfileFromPrincipal derives the application profile of a signed-in principal.
func ProfileFromPrincipal(p Principal) Profile {
	return Profile{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Avatar:      p.Avatar,
		JoinDate:    p.JoinDate,
		Streak:      p.Progress.Streak,
		TotalPoints: p.Progress.TotalPoints,
		Level:       p.Progress.Level,
	}
}

// ChatMessage is one entry of the Study Buddy conversation.
type ChatMessage struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type" jsonschema:"enum=user,enum=ai"`
	Content   string          `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
	Category  MessageCategory `json:"category,omitempty" jsonschema:"enum=learning,enum=career,enum=general"`
}

// NewsItem is a tech news or opportunity entry.
type NewsItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	URL         string       `json:"url"`
	PublishDate string       `json:"publishDate"`
	Category    NewsCategory `json:"category" jsonschema:"enum=tech,enum=jobs,enum=internships,enum=events"`
}

// Assignment is a task with a due date and a point value.
type Assignment struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
	Points      int    `json:"points"`
	Category    string `json:"category"`
}

// ModuleProgress is the progress of one learning module.
type ModuleProgress struct {
	Completed    bool      `json:"completed"`
	Progress     int       `json:"progress" jsonschema:"minimum=0,maximum=100"`
	LastAccessed time.Time `json:"lastAccessed"`
}

// TopicProgress groups module progress under a learning topic.
type TopicProgress struct {
	Completed int                       `json:"completed"`
	Total     int                       `json:"total"`
	Modules   map[string]ModuleProgress `json:"modules"`
}

// LearningProgress maps topic keys to their progress.
type LearningProgress map[string]TopicProgress

// Clone returns a deep copy of lp. A nil map clones to an empty one.
func (lp LearningProgress) Clone() LearningProgress {
	out := make(LearningProgress, len(lp))
	for topic, tp := range lp {
		tp.Modules = maps.Clone(tp.Modules)
		out[topic] = tp
	}
	return out
}

// ModuleCount returns the number of tracked modules and how many are completed.
func (lp LearningProgress) ModuleCount() (completed, total int) {
	for _, tp := range lp {
		for _, m := range tp.Modules {
			total++
			if m.Completed {
				completed++
			}
		}
	}
	return completed, total
}

// Topics returns the topic keys in sorted order.
func (lp LearningProgress) Topics() []string {
	return slices.Sorted(maps.Keys(lp))
}
