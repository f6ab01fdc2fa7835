package schema

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// ValidateGoal validates a daily goal text.
func ValidateGoal(goal string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(goal))
	if n < GoalMin || n > GoalMax {
		return fmt.Errorf("goal must be %d-%d characters", GoalMin, GoalMax)
	}
	return nil
}

// ValidateProgress validates a module progress percentage.
func ValidateProgress(progress int) error {
	if progress < ProgressMin || progress > ProgressMax {
		return fmt.Errorf("must be %d-%d", ProgressMin, ProgressMax)
	}
	return nil
}

// ValidateDate validates a streak or due date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD, got %q", date)
	}
	return nil
}

// ValidateModuleID validates a module identifier.
func ValidateModuleID(id string) error {
	if id == "" || len(id) > ModuleIDMax {
		return fmt.Errorf("module id must be 1-%d characters", ModuleIDMax)
	}
	if strings.ContainsAny(id, " \t\n") {
		return fmt.Errorf("module id must not contain whitespace")
	}
	return nil
}

// ValidateRole validates a principal role.
func ValidateRole(role Role) error {
	switch role {
	case RoleUser, RoleAdmin:
		return nil
	default:
		return fmt.Errorf("invalid role: %s", role)
	}
}

// ValidateMessageCategory validates a chat category. Empty means general.
func ValidateMessageCategory(c MessageCategory) error {
	switch c {
	case "", CategoryLearning, CategoryCareer, CategoryGeneral:
		return nil
	default:
		return fmt.Errorf("invalid category: %s", c)
	}
}

// ValidateNewsCategory validates a news item category.
func ValidateNewsCategory(c NewsCategory) error {
	switch c {
	case NewsTech, NewsJobs, NewsInternships, NewsEvents:
		return nil
	default:
		return fmt.Errorf("invalid news category: %s", c)
	}
}

// ValidateRegistration validates the fields of a new account.
func ValidateRegistration(name, email, password string, role Role) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < NameMin || n > NameMax {
		return fmt.Errorf("name must be %d-%d characters", NameMin, NameMax)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email: %s", email)
	}
	if len(password) < PasswordMinimum {
		return fmt.Errorf("password must be at least %d characters", PasswordMinimum)
	}
	return ValidateRole(role)
}

// ValidateAssignment validates an assignment.
func ValidateAssignment(a *Assignment) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if a.Points < 0 {
		return fmt.Errorf("points must not be negative")
	}
	if a.DueDate != "" {
		if err := ValidateDate(a.DueDate); err != nil {
			return err
		}
	}
	return nil
}

// ValidateResume validates a résumé document. Blank header fields are allowed
// so a draft can be filled in one section at a time.
func ValidateResume(r *Resume) error {
	if email := r.PersonalInfo.Email; email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("invalid email: %s", email)
		}
	}
	for i, e := range r.Experience {
		if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Position) == "" {
			return fmt.Errorf("experience %d: company and position are required", i+1)
		}
	}
	for i, e := range r.Education {
		if strings.TrimSpace(e.Institution) == "" || strings.TrimSpace(e.Degree) == "" {
			return fmt.Errorf("education %d: institution and degree are required", i+1)
		}
	}
	for i, p := range r.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("project %d: name is required", i+1)
		}
	}
	return nil
}
