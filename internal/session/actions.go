package session

import (
	"develevate/internal/store"
	"develevate/pkg/schema"
)

// Action tags.
const (
	TypeLoginStart            = "LOGIN_START"
	TypeLoginSuccess          = "LOGIN_SUCCESS"
	TypeLoginFailure          = "LOGIN_FAILURE"
	TypeRegisterStart         = "REGISTER_START"
	TypeRegisterSuccess       = "REGISTER_SUCCESS"
	TypeRegisterFailure       = "REGISTER_FAILURE"
	TypeLogout                = "LOGOUT"
	TypeUpdateProfile         = "UPDATE_PROFILE"
	TypeChangePasswordSuccess = "CHANGE_PASSWORD_SUCCESS"
	TypeLoadUsers             = "LOAD_USERS"
	TypeUpdateUser            = "UPDATE_USER"
	TypeDeleteUser            = "DELETE_USER"
	TypeClearError            = "CLEAR_ERROR"
	TypeSetPrincipal          = "SET_PRINCIPAL"
	TypeHydrate               = "HYDRATE_AUTH"
)

// Action is the closed set of session transitions.
type Action interface {
	store.Action
	isSessionAction()
}

// LoginStart marks a login attempt in flight.
type LoginStart struct{}

// LoginSuccess signs a principal in.
type LoginSuccess struct {
	User  schema.Principal `json:"user"`
	Token string           `json:"token"`
}

// LoginFailure records a failed login attempt.
type LoginFailure struct {
	Message string
}

// RegisterStart marks a registration in flight.
type RegisterStart struct{}

// RegisterSuccess signs a newly registered principal in.
type RegisterSuccess struct {
	User  schema.Principal `json:"user"`
	Token string           `json:"token"`
}

// RegisterFailure records a failed registration.
type RegisterFailure struct {
	Message string
}

// Logout signs the current principal out. The last error is kept.
type Logout struct{}

// UpdateProfile merges a patch into the signed-in principal.
type UpdateProfile struct {
	Patch schema.ProfilePatch
}

// ChangePasswordSuccess clears the error after a password change.
type ChangePasswordSuccess struct{}

// LoadUsers replaces the administrative principal list.
type LoadUsers struct {
	Users []schema.Principal
}

// UpdateUser replaces the listed principal with the same id.
type UpdateUser struct {
	User schema.Principal
}

// DeleteUser removes the listed principal with ID.
type DeleteUser struct {
	ID string
}

// ClearError clears the last error.
type ClearError struct{}

// SetPrincipal replaces the signed-in principal without touching anything else.
// A nil User clears it.
type SetPrincipal struct {
	User *schema.Principal
}

// Hydrate merges a persisted snapshot over the current state.
type Hydrate struct {
	Fields store.Fields
}

// Unknown is an action with a tag this vocabulary does not define.
type Unknown struct {
	Type string
}

func (LoginStart) ActionType() string            { return TypeLoginStart }
func (LoginSuccess) ActionType() string          { return TypeLoginSuccess }
func (LoginFailure) ActionType() string          { return TypeLoginFailure }
func (RegisterStart) ActionType() string         { return TypeRegisterStart }
func (RegisterSuccess) ActionType() string       { return TypeRegisterSuccess }
func (RegisterFailure) ActionType() string       { return TypeRegisterFailure }
func (Logout) ActionType() string                { return TypeLogout }
func (UpdateProfile) ActionType() string         { return TypeUpdateProfile }
func (ChangePasswordSuccess) ActionType() string { return TypeChangePasswordSuccess }
func (LoadUsers) ActionType() string             { return TypeLoadUsers }
func (UpdateUser) ActionType() string            { return TypeUpdateUser }
func (DeleteUser) ActionType() string            { return TypeDeleteUser }
func (ClearError) ActionType() string            { return TypeClearError }
func (SetPrincipal) ActionType() string          { return TypeSetPrincipal }
func (Hydrate) ActionType() string               { return TypeHydrate }
func (a Unknown) ActionType() string             { return a.Type }

func (LoginStart) isSessionAction()            {}
func (LoginSuccess) isSessionAction()          {}
func (LoginFailure) isSessionAction()          {}
func (RegisterStart) isSessionAction()         {}
func (RegisterSuccess) isSessionAction()       {}
func (RegisterFailure) isSessionAction()       {}
func (Logout) isSessionAction()                {}
func (UpdateProfile) isSessionAction()         {}
func (ChangePasswordSuccess) isSessionAction() {}
func (LoadUsers) isSessionAction()             {}
func (UpdateUser) isSessionAction()            {}
func (DeleteUser) isSessionAction()            {}
func (ClearError) isSessionAction()            {}
func (SetPrincipal) isSessionAction()          {}
func (Hydrate) isSessionAction()               {}
func (Unknown) isSessionAction()               {}
