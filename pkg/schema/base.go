package schema

// Role is the access level of a principal.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// MessageType identifies the author of a chat message.
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageAI   MessageType = "ai"
)

// MessageCategory is the Study Buddy mode a chat message was sent in.
type MessageCategory string

const (
	CategoryLearning MessageCategory = "learning"
	CategoryCareer   MessageCategory = "career"
	CategoryGeneral  MessageCategory = "general"
)

// NewsCategory classifies a news item.
type NewsCategory string

const (
	NewsTech        NewsCategory = "tech"
	NewsJobs        NewsCategory = "jobs"
	NewsInternships NewsCategory = "internships"
	NewsEvents      NewsCategory = "events"
)

// Theme is a principal's UI theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language is a principal's UI language preference.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// DefaultLevel is the level assigned to newly registered principals.
const DefaultLevel = "Beginner"

// ValidationLimits defines the constraints for various fields.
const (
	GoalMin         = 1
	GoalMax         = 200
	ProgressMin     = 0
	ProgressMax     = 100
	NameMin         = 1
	NameMax         = 100
	ChatMessageMax  = 4000
	ModuleIDMax     = 64
	DateLayout      = "2006-01-02"
	PasswordMinimum = 6
)
