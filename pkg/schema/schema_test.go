package schema

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestIDGeneration(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() (string, error)
		prefix string
		length int
	}{
		{"principal", NewPrincipalID, "user_", 12},
		{"message", NewMessageID, "msg_", 10},
		{"assignment", NewAssignmentID, "asg_", 10},
		{"news", NewNewsID, "news_", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.gen()
			if err != nil {
				t.Fatalf("Failed to generate ID: %v", err)
			}
			if !strings.HasPrefix(id, tt.prefix) {
				t.Errorf("ID should start with %s, got %s", tt.prefix, id)
			}
			if got := len(strings.TrimPrefix(id, tt.prefix)); got != tt.length {
				t.Errorf("Nanoid portion should be %d characters, got %d", tt.length, got)
			}
		})
	}
}

func TestIDCollisionResistance(t *testing.T) {
	// Generate 10,000 IDs and check for collisions
	ids := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id, err := NewMessageID()
		if err != nil {
			t.Fatalf("Failed to generate ID: %v", err)
		}
		if ids[id] {
			t.Fatalf("Collision detected after %d iterations: %s", i, id)
		}
		ids[id] = true
	}
}

func TestPrincipalJSONKeys(t *testing.T) {
	p := Principal{
		ID:          "user_1",
		Name:        "Asha",
		Email:       "asha@example.com",
		Role:        RoleUser,
		JoinDate:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		IsActive:    true,
		Preferences: DefaultPreferences(),
		Progress:    PrincipalProgress{CoursesEnrolled: []string{}, Level: DefaultLevel},
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Failed to marshal principal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal principal: %v", err)
	}

	// Stored keys match what the browser client wrote
	for _, key := range []string{"id", "name", "email", "role", "joinDate", "lastLogin", "isActive", "preferences", "progress"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	for _, key := range []string{"avatar", "bio", "socialLinks"} {
		if _, ok := raw[key]; ok {
			t.Errorf("empty optional key %q should be omitted", key)
		}
	}

	prefs := raw["preferences"].(map[string]any)
	if prefs["theme"] != "light" || prefs["language"] != "en" || prefs["emailUpdates"] != true {
		t.Errorf("unexpected preferences: %v", prefs)
	}
}

func TestProfilePatchApply(t *testing.T) {
	original := Principal{
		ID:       "user_1",
		Name:     "Asha",
		Email:    "asha@example.com",
		Bio:      "Student",
		Progress: PrincipalProgress{CoursesEnrolled: []string{"dsa"}, Level: DefaultLevel},
	}

	name := "Asha K"
	patch := ProfilePatch{
		Name:     &name,
		Progress: &PrincipalProgress{CoursesEnrolled: []string{"dsa", "web"}, Level: "Intermediate"},
	}

	got := patch.Apply(original)

	if got.Name != "Asha K" {
		t.Errorf("Name = %q, want %q", got.Name, "Asha K")
	}
	if got.Bio != "Student" || got.Email != "asha@example.com" {
		t.Errorf("unpatched fields changed: %+v", got)
	}
	if got.Progress.Level != "Intermediate" || len(got.Progress.CoursesEnrolled) != 2 {
		t.Errorf("Progress not replaced: %+v", got.Progress)
	}

	// Apply does not touch its input
	if original.Name != "Asha" || len(original.Progress.CoursesEnrolled) != 1 {
		t.Errorf("original mutated: %+v", original)
	}

	// The result shares no slices with the patch
	patch.Progress.CoursesEnrolled[0] = "changed"
	if got.Progress.CoursesEnrolled[0] != "dsa" {
		t.Errorf("result aliases the patch slice")
	}

	if !(ProfilePatch{}).IsEmpty() || patch.IsEmpty() {
		t.Errorf("IsEmpty mismatch")
	}
}

func TestProfilePatchPartialJSON(t *testing.T) {
	var patch ProfilePatch
	if err := json.Unmarshal([]byte(`{"bio":"Backend dev","isActive":false}`), &patch); err != nil {
		t.Fatalf("Failed to unmarshal patch: %v", err)
	}

	if patch.Bio == nil || *patch.Bio != "Backend dev" {
		t.Errorf("Bio not decoded: %v", patch.Bio)
	}
	if patch.IsActive == nil || *patch.IsActive {
		t.Errorf("explicit false should decode to a non-nil pointer")
	}
	if patch.Name != nil || patch.Preferences != nil {
		t.Errorf("absent fields should stay nil")
	}
}

func TestProfileFromPrincipal(t *testing.T) {
	p := Principal{
		ID:       "user_1",
		Name:     "Asha",
		Email:    "asha@example.com",
		Progress: PrincipalProgress{Streak: 4, TotalPoints: 120, Level: "Intermediate"},
	}

	got := ProfileFromPrincipal(p)
	want := Profile{ID: "user_1", Name: "Asha", Email: "asha@example.com", Streak: 4, TotalPoints: 120, Level: "Intermediate"}
	if got != want {
		t.Errorf("ProfileFromPrincipal() = %+v, want %+v", got, want)
	}
}

func TestResumeClone(t *testing.T) {
	r := &Resume{
		ID:         "resume_1",
		Experience: []Experience{{Company: "Acme", Description: []string{"built things"}}},
		Projects:   []Project{{Name: "devtool", Technologies: []string{"go"}}},
		Skills:     Skills{Technical: []string{"go"}, Soft: []string{"writing"}},
	}

	c := r.Clone()
	c.Experience[0].Description[0] = "changed"
	c.Projects[0].Technologies[0] = "rust"
	c.Skills.Technical[0] = "rust"

	if r.Experience[0].Description[0] != "built things" {
		t.Errorf("experience description aliased")
	}
	if r.Projects[0].Technologies[0] != "go" {
		t.Errorf("project technologies aliased")
	}
	if r.Skills.Technical[0] != "go" {
		t.Errorf("skills aliased")
	}

	var nilResume *Resume
	if nilResume.Clone() != nil {
		t.Errorf("Clone of nil should be nil")
	}
}

func TestLearningProgressClone(t *testing.T) {
	lp := LearningProgress{
		"dsa": {Modules: map[string]ModuleProgress{"arrays": {Completed: true, Progress: 100}}},
		"web": {Modules: map[string]ModuleProgress{"html": {Progress: 30}}},
	}

	c := lp.Clone()
	c["dsa"].Modules["arrays"] = ModuleProgress{Progress: 10}

	if lp["dsa"].Modules["arrays"].Progress != 100 {
		t.Errorf("Clone shares module maps")
	}

	completed, total := lp.ModuleCount()
	if completed != 1 || total != 2 {
		t.Errorf("ModuleCount() = %d/%d, want 1/2", completed, total)
	}

	if got := strings.Join(lp.Topics(), ","); got != "dsa,web" {
		t.Errorf("Topics() = %s", got)
	}

	if LearningProgress(nil).Clone() == nil {
		t.Errorf("Clone of nil should be an empty map")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"goal ok", ValidateGoal("Read 1 chapter"), false},
		{"goal blank", ValidateGoal("   "), true},
		{"goal too long", ValidateGoal(strings.Repeat("x", GoalMax+1)), true},
		{"progress zero", ValidateProgress(0), false},
		{"progress full", ValidateProgress(100), false},
		{"progress negative", ValidateProgress(-1), true},
		{"progress over", ValidateProgress(101), true},
		{"date ok", ValidateDate("2025-03-14"), false},
		{"date bad", ValidateDate("14/03/2025"), true},
		{"module ok", ValidateModuleID("dashboard"), false},
		{"module empty", ValidateModuleID(""), true},
		{"module space", ValidateModuleID("study buddy"), true},
		{"role user", ValidateRole(RoleUser), false},
		{"role bad", ValidateRole("root"), true},
		{"category empty", ValidateMessageCategory(""), false},
		{"category bad", ValidateMessageCategory("gossip"), true},
		{"news category ok", ValidateNewsCategory(NewsInternships), false},
		{"news category bad", ValidateNewsCategory("gossip"), true},
		{"registration ok", ValidateRegistration("Asha", "asha@example.com", "password123", RoleUser), false},
		{"registration bad email", ValidateRegistration("Asha", "not-an-email", "password123", RoleUser), true},
		{"registration short password", ValidateRegistration("Asha", "asha@example.com", "123", RoleUser), true},
		{"assignment ok", ValidateAssignment(&Assignment{Title: "Two Sum", DueDate: "2025-03-14"}), false},
		{"assignment no title", ValidateAssignment(&Assignment{}), true},
		{"assignment bad date", ValidateAssignment(&Assignment{Title: "Two Sum", DueDate: "soon"}), true},
		{"resume blank draft", ValidateResume(&Resume{ID: "1"}), false},
		{"resume bad email", ValidateResume(&Resume{PersonalInfo: PersonalInfo{Email: "asha@"}}), true},
		{"resume experience ok", ValidateResume(&Resume{Experience: []Experience{{Company: "Acme", Position: "Intern"}}}), false},
		{"resume experience no company", ValidateResume(&Resume{Experience: []Experience{{Position: "Intern"}}}), true},
		{"resume education no degree", ValidateResume(&Resume{Education: []Education{{Institution: "IIT"}}}), true},
		{"resume project no name", ValidateResume(&Resume{Projects: []Project{{Description: "x"}}}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", tt.err, tt.wantErr)
			}
		})
	}
}
