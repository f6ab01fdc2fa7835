package appstate

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"testing"
	"time"

	"develevate/internal/store"
	"develevate/pkg/schema"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func testReducer(mod ...func(*Options)) store.Reducer[State, Action] {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return clock }
	for _, m := range mod {
		m(&opts)
	}
	return NewReducer(opts)
}

func apply(reduce store.Reducer[State, Action], s State, actions ...Action) State {
	for _, a := range actions {
		s = reduce(s, a)
	}
	return s
}

func populated() State {
	s := Initial()
	s.User = &schema.Profile{ID: "1", Name: "John Doe", Level: "Intermediate"}
	s.LearningProgress = schema.LearningProgress{
		"web": {Completed: 1, Total: 4, Modules: map[string]schema.ModuleProgress{
			"html": {Completed: true, Progress: 100, LastAccessed: clock.Add(-time.Hour)},
		}},
	}
	s.ChatHistory = []schema.ChatMessage{{ID: "msg_1", Type: schema.MessageUser, Content: "hi", Timestamp: clock}}
	s.Bookmarks = []string{"dsa-arrays"}
	s.Assignments = []schema.Assignment{
		{ID: "asg_1", Title: "Two Sum", DueDate: "2025-03-20", Points: 10},
		{ID: "asg_2", Title: "Valid Parentheses", Points: 20},
	}
	s.NewsItems = []schema.NewsItem{{ID: "1", Title: "Go 1.25", Category: schema.NewsTech}}
	s.Resume = &schema.Resume{ID: "resume_1", Skills: schema.Skills{Technical: []string{"go"}, Soft: []string{}}}
	s.DarkMode = true
	s.CurrentModule = "chatbot"
	s.DailyGoals = []string{"Read 1 chapter", "Solve 2 problems"}
	s.CompletedGoals = []string{"Watch a lecture"}
	s.StreakData = map[string]bool{"2025-03-13": true}
	return s
}

func allActions() []Action {
	return []Action{
		SetUser{User: &schema.Profile{ID: "2", Name: "Asha"}},
		SetUser{},
		UpdateLearningProgress{Topic: "dsa", ModuleID: "arrays", Progress: 100},
		UpdateLearningProgress{Topic: "web", ModuleID: "css", Progress: 40, At: clock},
		AddChatMessage{Message: schema.ChatMessage{ID: "msg_2", Type: schema.MessageAI, Content: "hello"}},
		AddBookmark{ID: "new"},
		AddBookmark{ID: "dsa-arrays"},
		RemoveBookmark{ID: "dsa-arrays"},
		AddAssignment{Assignment: schema.Assignment{ID: "asg_3", Title: "Merge Intervals"}},
		CompleteAssignment{ID: "asg_1"},
		UpdateNews{Items: []schema.NewsItem{{ID: "9"}}},
		UpdateResume{Resume: schema.Resume{ID: "resume_2", Skills: schema.Skills{Technical: []string{"rust"}}}},
		ToggleDarkMode{},
		SetCurrentModule{Module: "resume"},
		AddDailyGoal{Goal: "Watch a lecture"},
		CompleteDailyGoal{Goal: "Read 1 chapter"},
		CompleteDailyGoal{Goal: "never added"},
		RemoveGoal{Goal: "Solve 2 problems"},
		UpdateStreak{Date: "2025-03-14", Completed: true},
		Hydrate{Fields: store.Fields{"darkMode": json.RawMessage(`false`), "bookmarks": json.RawMessage(`["x"]`)}},
		Unknown{Type: "FROM_A_NEWER_CLIENT"},
	}
}

func TestReduce_Purity(t *testing.T) {
	reduce := testReducer()

	for i, action := range allActions() {
		t.Run(fmt.Sprintf("%d_%s", i, action.ActionType()), func(t *testing.T) {
			s := populated()
			before := deepCopy(s)

			_ = reduce(s, action)
			assert.Empty(t, cmp.Diff(before, s), "input state changed")

			a := reduce(populated(), action)
			b := reduce(populated(), action)
			assert.Empty(t, cmp.Diff(a, b), "not deterministic")
		})
	}
}

func TestReduce_UnknownIsIdentity(t *testing.T) {
	s := populated()
	assert.Empty(t, cmp.Diff(s, testReducer()(s, Unknown{Type: "SOMETHING_NEW"})))
}

func TestReduce_GoalPartition(t *testing.T) {
	reduce := testReducer()

	s := reduce(Initial(), AddDailyGoal{Goal: "Read 1 chapter"})
	assert.Equal(t, []string{"Read 1 chapter"}, s.DailyGoals)

	s = reduce(s, CompleteDailyGoal{Goal: "Read 1 chapter"})
	assert.Empty(t, s.DailyGoals)
	assert.Equal(t, []string{"Read 1 chapter"}, s.CompletedGoals)

	// Any interleaving keeps the lists disjoint
	goals := []string{"a", "b", "c"}
	for i := range 60 {
		g := goals[i%len(goals)]
		if i%4 == 0 {
			s = reduce(s, CompleteDailyGoal{Goal: g})
		} else {
			s = reduce(s, AddDailyGoal{Goal: g})
		}
		for _, pending := range s.DailyGoals {
			require.NotContains(t, s.CompletedGoals, pending, "step %d", i)
		}
	}
}

func TestReduce_AddGoalReopensCompleted(t *testing.T) {
	reduce := testReducer()
	s := apply(reduce, Initial(),
		AddDailyGoal{Goal: "g"},
		AddDailyGoal{Goal: "g"},
		CompleteDailyGoal{Goal: "g"},
		AddDailyGoal{Goal: "g"},
	)
	assert.Equal(t, []string{"g"}, s.DailyGoals)
	assert.Empty(t, s.CompletedGoals)
}

func TestReduce_CompleteUnknownGoal(t *testing.T) {
	lenient := testReducer()
	s := lenient(Initial(), CompleteDailyGoal{Goal: "never added"})
	assert.Equal(t, []string{"never added"}, s.CompletedGoals)

	// Completing twice records it once
	s = lenient(s, CompleteDailyGoal{Goal: "never added"})
	assert.Equal(t, []string{"never added"}, s.CompletedGoals)

	strict := testReducer(func(o *Options) { o.StrictGoalCompletion = true })
	s = strict(Initial(), CompleteDailyGoal{Goal: "never added"})
	assert.Empty(t, s.CompletedGoals)

	s = apply(strict, Initial(), AddDailyGoal{Goal: "real"}, CompleteDailyGoal{Goal: "real"})
	assert.Equal(t, []string{"real"}, s.CompletedGoals)
}

func TestReduce_RemoveGoal(t *testing.T) {
	s := testReducer()(populated(), RemoveGoal{Goal: "Read 1 chapter"})
	assert.Equal(t, []string{"Solve 2 problems"}, s.DailyGoals)

	s = testReducer()(s, RemoveGoal{Goal: "Watch a lecture"})
	assert.Empty(t, s.CompletedGoals)
}

func TestReduce_BookmarkIdempotence(t *testing.T) {
	reduce := testReducer()

	once := reduce(Initial(), AddBookmark{ID: "x"})
	twice := reduce(once, AddBookmark{ID: "x"})
	assert.Equal(t, []string{"x"}, twice.Bookmarks)
	assert.Empty(t, cmp.Diff(once, twice))

	removed := reduce(twice, RemoveBookmark{ID: "x"})
	assert.Empty(t, removed.Bookmarks)
}

func TestToggleBookmark(t *testing.T) {
	reduce := testReducer()
	s := Initial()

	s = reduce(s, ToggleBookmark(s, "dsa-arrays"))
	assert.True(t, s.IsBookmarked("dsa-arrays"))

	s = reduce(s, ToggleBookmark(s, "dsa-arrays"))
	assert.False(t, s.IsBookmarked("dsa-arrays"))
}

func TestReduce_LearningProgressUpsert(t *testing.T) {
	reduce := testReducer()

	s := reduce(Initial(), UpdateLearningProgress{Topic: "dsa", ModuleID: "arrays", Progress: 100})
	assert.Equal(t, schema.ModuleProgress{Completed: true, Progress: 100, LastAccessed: clock},
		s.LearningProgress["dsa"].Modules["arrays"])

	// Other topics and sibling modules are untouched
	s = populated()
	s = reduce(s, UpdateLearningProgress{Topic: "web", ModuleID: "css", Progress: 40, At: clock.Add(time.Minute)})
	web := s.LearningProgress["web"]
	assert.Equal(t, 1, web.Completed)
	assert.Equal(t, 4, web.Total)
	assert.True(t, web.Modules["html"].Completed)
	assert.Equal(t, schema.ModuleProgress{Progress: 40, LastAccessed: clock.Add(time.Minute)}, web.Modules["css"])

	s = reduce(s, UpdateLearningProgress{Topic: "dsa", ModuleID: "arrays", Progress: 99})
	assert.False(t, s.LearningProgress["dsa"].Modules["arrays"].Completed)
	assert.Len(t, s.LearningProgress["web"].Modules, 2)
}

func TestReduce_Assignments(t *testing.T) {
	reduce := testReducer()
	s := reduce(populated(), CompleteAssignment{ID: "asg_2"})
	assert.False(t, s.Assignments[0].Completed)
	assert.True(t, s.Assignments[1].Completed)

	s = reduce(s, AddAssignment{Assignment: schema.Assignment{ID: "asg_3", Title: "Merge Intervals"}})
	require.Len(t, s.Assignments, 3)
	assert.Equal(t, "asg_3", s.Assignments[2].ID)

	// Unknown id changes nothing
	s2 := reduce(s, CompleteAssignment{ID: "asg_404"})
	assert.Empty(t, cmp.Diff(s, s2))
}

func TestReduce_ChatHistoryCap(t *testing.T) {
	reduce := testReducer(func(o *Options) { o.ChatHistoryLimit = 3 })

	s := Initial()
	for i := range 5 {
		s = reduce(s, AddChatMessage{Message: schema.ChatMessage{ID: fmt.Sprintf("msg_%d", i)}})
	}

	require.Len(t, s.ChatHistory, 3)
	assert.Equal(t, "msg_2", s.ChatHistory[0].ID)
	assert.Equal(t, "msg_4", s.ChatHistory[2].ID)

	unbounded := testReducer(func(o *Options) { o.ChatHistoryLimit = 0 })
	s = Initial()
	for i := range 250 {
		s = unbounded(s, AddChatMessage{Message: schema.ChatMessage{ID: fmt.Sprintf("msg_%d", i)}})
	}
	assert.Len(t, s.ChatHistory, 250)
}

func TestReduce_NewsCap(t *testing.T) {
	reduce := testReducer(func(o *Options) { o.NewsLimit = 2 })

	items := []schema.NewsItem{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	s := reduce(Initial(), UpdateNews{Items: items})
	assert.Equal(t, []schema.NewsItem{{ID: "1"}, {ID: "2"}}, s.NewsItems)

	s = reduce(s, UpdateNews{})
	assert.NotNil(t, s.NewsItems)
	assert.Empty(t, s.NewsItems)
}

func TestReduce_ResumeReplacedWholesale(t *testing.T) {
	resume := schema.Resume{ID: "resume_2", Skills: schema.Skills{Technical: []string{"rust"}}}
	s := testReducer()(populated(), UpdateResume{Resume: resume})

	require.NotNil(t, s.Resume)
	assert.Equal(t, "resume_2", s.Resume.ID)
	assert.Equal(t, []string{"rust"}, s.Resume.Skills.Technical)
	assert.Nil(t, s.Resume.Skills.Soft)

	resume.Skills.Technical[0] = "changed"
	assert.Equal(t, "rust", s.Resume.Skills.Technical[0])
}

func TestReduce_ThemeModuleStreak(t *testing.T) {
	reduce := testReducer()
	s := apply(reduce, Initial(),
		ToggleDarkMode{},
		SetCurrentModule{Module: "resume"},
		UpdateStreak{Date: "2025-03-12", Completed: true},
		UpdateStreak{Date: "2025-03-13", Completed: true},
		UpdateStreak{Date: "2025-03-14", Completed: false},
	)

	assert.True(t, s.DarkMode)
	assert.Equal(t, "resume", s.CurrentModule)
	assert.Equal(t, map[string]bool{"2025-03-12": true, "2025-03-13": true, "2025-03-14": false}, s.StreakData)
	assert.Equal(t, 2, s.CurrentStreak("2025-03-14"))

	s = reduce(s, UpdateStreak{Date: "2025-03-14", Completed: true})
	assert.Equal(t, 3, s.CurrentStreak("2025-03-14"))
	assert.Equal(t, 0, s.CurrentStreak("2025-03-20"))
	assert.Equal(t, 0, s.CurrentStreak("not a date"))

	assert.False(t, reduce(s, ToggleDarkMode{}).DarkMode)
}

func TestReduce_HydrateRoundTrip(t *testing.T) {
	original := populated()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var fields store.Fields
	require.NoError(t, json.Unmarshal(data, &fields))

	restored := testReducer()(Initial(), Hydrate{Fields: fields})
	assert.Empty(t, cmp.Diff(original, restored))
}

func TestReduce_HydrateCompatibility(t *testing.T) {
	fields := store.Fields{
		"darkMode":      json.RawMessage(`true`),
		"bookmarks":     json.RawMessage(`null`),
		"streakData":    json.RawMessage(`{"2025-01-01":true}`),
		"currentModule": json.RawMessage(`7`),                // wrong type keeps the default
		"activityLog":   json.RawMessage(`[{"what":"old"}]`), // unknown field is ignored
	}

	s := testReducer()(Initial(), Hydrate{Fields: fields})

	want := Initial()
	want.DarkMode = true
	want.StreakData = map[string]bool{"2025-01-01": true}
	assert.Empty(t, cmp.Diff(want, s))
}

func TestReduce_HydrateReopensOverlappingGoals(t *testing.T) {
	fields := store.Fields{
		"dailyGoals":     json.RawMessage(`["Read 1 chapter","Solve 2 problems"]`),
		"completedGoals": json.RawMessage(`["Read 1 chapter","Watch a talk"]`),
	}

	s := testReducer()(Initial(), Hydrate{Fields: fields})

	assert.Equal(t, []string{"Read 1 chapter", "Solve 2 problems"}, s.DailyGoals)
	assert.Equal(t, []string{"Watch a talk"}, s.CompletedGoals)

	s = testReducer()(s, CompleteDailyGoal{Goal: "Read 1 chapter"})
	assert.Equal(t, []string{"Solve 2 problems"}, s.DailyGoals)
	assert.Equal(t, []string{"Watch a talk", "Read 1 chapter"}, s.CompletedGoals)
}

func deepCopy(s State) State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	s.LearningProgress = s.LearningProgress.Clone()
	s.ChatHistory = slices.Clone(s.ChatHistory)
	s.Bookmarks = slices.Clone(s.Bookmarks)
	s.Assignments = slices.Clone(s.Assignments)
	s.NewsItems = slices.Clone(s.NewsItems)
	s.Resume = s.Resume.Clone()
	s.DailyGoals = slices.Clone(s.DailyGoals)
	s.CompletedGoals = slices.Clone(s.CompletedGoals)
	s.StreakData = maps.Clone(s.StreakData)
	return s
}
