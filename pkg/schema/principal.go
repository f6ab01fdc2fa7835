package schema

import (
	"slices"
	"time"
)

// Principal is an account known to the session store.
type Principal struct {
	ID          string            `json:"id"`
	Name        string            `json:"name" jsonschema:"minLength=1,maxLength=100"`
	Email       string            `json:"email" jsonschema:"format=email"`
	Avatar      string            `json:"avatar,omitempty"`
	Role        Role              `json:"role" jsonschema:"enum=user,enum=admin"`
	Bio         string            `json:"bio,omitempty"`
	SocialLinks SocialLinks       `json:"socialLinks,omitzero"`
	JoinDate    time.Time         `json:"joinDate"`
	LastLogin   time.Time         `json:"lastLogin"`
	IsActive    bool              `json:"isActive"`
	Preferences Preferences       `json:"preferences"`
	Progress    PrincipalProgress `json:"progress"`
}

// SocialLinks are optional profile links.
type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Preferences are per-principal UI settings.
type Preferences struct {
	Theme         Theme    `json:"theme" jsonschema:"enum=light,enum=dark"`
	Notifications bool     `json:"notifications"`
	Language      Language `json:"language" jsonschema:"enum=en,enum=hi"`
	EmailUpdates  bool     `json:"emailUpdates"`
}

// PrincipalProgress summarizes a principal's activity.
type PrincipalProgress struct {
	CoursesEnrolled  []string `json:"coursesEnrolled"`
	CompletedModules int      `json:"completedModules"`
	TotalPoints      int      `json:"totalPoints"`
	Streak           int      `json:"streak"`
	Level            string   `json:"level"`
}

// DefaultPreferences returns the preferences of a new account.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         ThemeLight,
		Notifications: true,
		Language:      LanguageEnglish,
		EmailUpdates:  true,
	}
}

// Clone returns a copy of p that shares no slices with it.
func (p Principal) Clone() Principal {
	p.Progress.CoursesEnrolled = slices.Clone(p.Progress.CoursesEnrolled)
	return p
}

// ProfilePatch is a partial principal update. Nil fields are left unchanged;
// non-nil fields replace the current value wholesale.
type ProfilePatch struct {
	Name        *string            `json:"name,omitempty"`
	Email       *string            `json:"email,omitempty"`
	Avatar      *string            `json:"avatar,omitempty"`
	Bio         *string            `json:"bio,omitempty"`
	SocialLinks *SocialLinks       `json:"socialLinks,omitempty"`
	IsActive    *bool              `json:"isActive,omitempty"`
	Preferences *Preferences       `json:"preferences,omitempty"`
	Progress    *PrincipalProgress `json:"progress,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (pp ProfilePatch) IsEmpty() bool {
	return pp == ProfilePatch{}
}

// Apply returns p with the patch merged over it. p is not modified.
func (pp ProfilePatch) Apply(p Principal) Principal {
	next := p.Clone()
	if pp.Name != nil {
		next.Name = *pp.Name
	}
	if pp.Email != nil {
		next.Email = *pp.Email
	}
	if pp.Avatar != nil {
		next.Avatar = *pp.Avatar
	}
	if pp.Bio != nil {
		next.Bio = *pp.Bio
	}
	if pp.SocialLinks != nil {
		next.SocialLinks = *pp.SocialLinks
	}
	if pp.IsActive != nil {
		next.IsActive = *pp.IsActive
	}
	if pp.Preferences != nil {
		next.Preferences = *pp.Preferences
	}
	if pp.Progress != nil {
		next.Progress = *pp.Progress
		next.Progress.CoursesEnrolled = slices.Clone(pp.Progress.CoursesEnrolled)
	}
	return next
}
