package appstate

import (
	"maps"
	"slices"
	"time"

	"develevate/internal/store"
	"develevate/pkg/schema"
)

// Default list caps.
const (
	DefaultChatHistoryLimit = 200
	DefaultNewsLimit        = 50
)

// Options tune the application reducer.
type Options struct {
	// Now stamps learning progress updates that carry no time of their own.
	Now func() time.Time

	// ChatHistoryLimit keeps only the newest messages. Zero means unbounded.
	ChatHistoryLimit int

	// NewsLimit keeps only the first items of a news update. Zero means unbounded.
	NewsLimit int

	// StrictGoalCompletion ignores completion of goals that are not pending.
	// When false, completing an unknown goal still records it as completed.
	StrictGoalCompletion bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Now:              time.Now,
		ChatHistoryLimit: DefaultChatHistoryLimit,
		NewsLimit:        DefaultNewsLimit,
	}
}

type reducer struct {
	opts Options
}

// NewReducer returns the application reducer configured by opts. The reducer
// never mutates its input and returns it unchanged for Unknown actions.
func NewReducer(opts Options) store.Reducer[State, Action] {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := &reducer{opts: opts}
	return r.reduce
}

func (r *reducer) reduce(s State, action Action) State {
	switch a := action.(type) {
	case SetUser:
		next := s
		if a.User == nil {
			next.User = nil
		} else {
			u := *a.User
			next.User = &u
		}
		return next
	case UpdateLearningProgress:
		return r.applyLearningProgress(s, a)
	case AddChatMessage:
		return r.applyChatMessage(s, a)
	case AddBookmark:
		// Membership makes a repeated add a no-op
		if s.IsBookmarked(a.ID) {
			return s
		}
		next := s
		next.Bookmarks = append(slices.Clone(s.Bookmarks), a.ID)
		return next
	case RemoveBookmark:
		next := s
		next.Bookmarks = without(s.Bookmarks, a.ID)
		return next
	case AddAssignment:
		next := s
		next.Assignments = append(slices.Clone(s.Assignments), a.Assignment)
		return next
	case CompleteAssignment:
		next := s
		next.Assignments = slices.Clone(s.Assignments)
		for i := range next.Assignments {
			if next.Assignments[i].ID == a.ID {
				next.Assignments[i].Completed = true
			}
		}
		return next
	case UpdateNews:
		next := s
		next.NewsItems = r.capNews(a.Items)
		return next
	case UpdateResume:
		next := s
		next.Resume = a.Resume.Clone()
		return next
	case ToggleDarkMode:
		next := s
		next.DarkMode = !s.DarkMode
		return next
	case SetCurrentModule:
		next := s
		next.CurrentModule = a.Module
		return next
	case AddDailyGoal:
		return applyAddGoal(s, a.Goal)
	case CompleteDailyGoal:
		return r.applyCompleteGoal(s, a.Goal)
	case RemoveGoal:
		next := s
		next.DailyGoals = without(s.DailyGoals, a.Goal)
		next.CompletedGoals = without(s.CompletedGoals, a.Goal)
		return next
	case UpdateStreak:
		next := s
		next.StreakData = maps.Clone(s.StreakData)
		if next.StreakData == nil {
			next.StreakData = map[string]bool{}
		}
		next.StreakData[a.Date] = a.Completed
		return next
	case Hydrate:
		return applyHydrate(s, a)
	default:
		return s
	}
}

func (r *reducer) applyLearningProgress(s State, a UpdateLearningProgress) State {
	at := a.At
	if at.IsZero() {
		at = r.opts.Now()
	}

	next := s
	next.LearningProgress = maps.Clone(s.LearningProgress)
	if next.LearningProgress == nil {
		next.LearningProgress = schema.LearningProgress{}
	}

	topic := next.LearningProgress[a.Topic]
	topic.Modules = maps.Clone(topic.Modules)
	if topic.Modules == nil {
		topic.Modules = map[string]schema.ModuleProgress{}
	}
	topic.Modules[a.ModuleID] = schema.ModuleProgress{
		Completed:    a.Progress >= schema.ProgressMax,
		Progress:     a.Progress,
		LastAccessed: at,
	}
	next.LearningProgress[a.Topic] = topic
	return next
}

func (r *reducer) applyChatMessage(s State, a AddChatMessage) State {
	history := append(slices.Clone(s.ChatHistory), a.Message)
	if limit := r.opts.ChatHistoryLimit; limit > 0 && len(history) > limit {
		history = slices.Clone(history[len(history)-limit:])
	}
	next := s
	next.ChatHistory = history
	return next
}

func (r *reducer) capNews(items []schema.NewsItem) []schema.NewsItem {
	if limit := r.opts.NewsLimit; limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := slices.Clone(items)
	if out == nil {
		out = []schema.NewsItem{}
	}
	return out
}

// applyAddGoal keeps the two goal lists disjoint: re-adding a completed goal
// reopens it.
func applyAddGoal(s State, goal string) State {
	next := s
	if !slices.Contains(s.DailyGoals, goal) {
		next.DailyGoals = append(slices.Clone(s.DailyGoals), goal)
	}
	if slices.Contains(s.CompletedGoals, goal) {
		next.CompletedGoals = without(s.CompletedGoals, goal)
	}
	return next
}

func (r *reducer) applyCompleteGoal(s State, goal string) State {
	pending := slices.Contains(s.DailyGoals, goal)
	if !pending && r.opts.StrictGoalCompletion {
		return s
	}

	next := s
	next.DailyGoals = without(s.DailyGoals, goal)
	if !slices.Contains(s.CompletedGoals, goal) {
		next.CompletedGoals = append(slices.Clone(s.CompletedGoals), goal)
	}
	return next
}

// applyHydrate copies every field present in the snapshot. A field that does
// not decode keeps its current value; null collections become empty ones.
// A goal listed as both pending and completed stays pending.
func applyHydrate(s State, a Hydrate) State {
	next := s
	f := a.Fields

	if f.Has("user") {
		var user *schema.Profile
		if err := store.MergeField(f, "user", &user); err == nil {
			next.User = user
		}
	}
	if f.Has("resume") {
		var resume *schema.Resume
		if err := store.MergeField(f, "resume", &resume); err == nil {
			next.Resume = resume
		}
	}

	mergeMap(f, "learningProgress", &next.LearningProgress)
	mergeSlice(f, "chatHistory", &next.ChatHistory)
	mergeSlice(f, "bookmarks", &next.Bookmarks)
	mergeSlice(f, "assignments", &next.Assignments)
	mergeSlice(f, "newsItems", &next.NewsItems)
	mergeSlice(f, "dailyGoals", &next.DailyGoals)
	mergeSlice(f, "completedGoals", &next.CompletedGoals)
	mergeMap(f, "streakData", &next.StreakData)
	next.CompletedGoals = slices.DeleteFunc(slices.Clone(next.CompletedGoals), func(g string) bool {
		return slices.Contains(next.DailyGoals, g)
	})

	_ = store.MergeField(f, "darkMode", &next.DarkMode)
	_ = store.MergeField(f, "currentModule", &next.CurrentModule)

	return next
}

func mergeSlice[E any](f store.Fields, name string, dst *[]E) {
	v := *dst
	if err := store.MergeField(f, name, &v); err != nil {
		return
	}
	if v == nil {
		v = []E{}
	}
	*dst = v
}

func mergeMap[M ~map[K]V, K comparable, V any](f store.Fields, name string, dst *M) {
	v := *dst
	if err := store.MergeField(f, name, &v); err != nil {
		return
	}
	if v == nil {
		v = M{}
	}
	*dst = v
}

func without(list []string, item string) []string {
	return slices.DeleteFunc(slices.Clone(list), func(s string) bool { return s == item })
}

func parseDate(date string) (time.Time, error) {
	return time.Parse(schema.DateLayout, date)
}
