package session

import (
	"slices"

	"develevate/internal/store"
	"develevate/pkg/schema"
)

// Reduce applies a session action. It never mutates s and returns s unchanged
// for Unknown actions.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case LoginStart:
		return started(s)
	case RegisterStart:
		return started(s)
	case LoginSuccess:
		return signedIn(s, a.User, a.Token)
	case RegisterSuccess:
		return signedIn(s, a.User, a.Token)
	case LoginFailure:
		return failed(s, a.Message)
	case RegisterFailure:
		return failed(s, a.Message)
	case Logout:
		return applyLogout(s)
	case UpdateProfile:
		return applyUpdateProfile(s, a)
	case ChangePasswordSuccess, ClearError:
		next := s
		next.Error = ""
		return next
	case LoadUsers:
		next := s
		next.Users = clonePrincipals(a.Users)
		return next
	case UpdateUser:
		return applyUpdateUser(s, a)
	case DeleteUser:
		next := s
		next.Users = slices.DeleteFunc(clonePrincipals(s.Users), func(p schema.Principal) bool { return p.ID == a.ID })
		return next
	case SetPrincipal:
		next := s
		next.User = clonePrincipal(a.User)
		return next
	case Hydrate:
		return applyHydrate(s, a)
	default:
		return s
	}
}

func started(s State) State {
	next := s
	next.IsLoading = true
	next.Error = ""
	return next
}

func signedIn(s State, user schema.Principal, token string) State {
	next := s
	next.User = clonePrincipal(&user)
	next.SessionToken = token
	next.IsAuthenticated = true
	next.IsLoading = false
	next.Error = ""
	return next
}

func failed(s State, message string) State {
	next := s
	next.User = nil
	next.SessionToken = ""
	next.IsAuthenticated = false
	next.IsLoading = false
	next.Error = message
	return next
}

func applyLogout(s State) State {
	next := s
	next.User = nil
	next.SessionToken = ""
	next.IsAuthenticated = false
	return next
}

func applyUpdateProfile(s State, a UpdateProfile) State {
	if s.User == nil {
		return s
	}
	updated := a.Patch.Apply(*s.User)
	next := s
	next.User = &updated
	return next
}

func applyUpdateUser(s State, a UpdateUser) State {
	next := s
	next.Users = make([]schema.Principal, len(s.Users))
	for i, p := range s.Users {
		if p.ID == a.User.ID {
			next.Users[i] = a.User.Clone()
		} else {
			next.Users[i] = p.Clone()
		}
	}
	return next
}

// applyHydrate copies every field present in the snapshot. A field that does
// not decode keeps its current value.
func applyHydrate(s State, a Hydrate) State {
	next := s

	if a.Fields.Has("user") {
		var user *schema.Principal
		if err := store.MergeField(a.Fields, "user", &user); err == nil {
			next.User = user
		}
	}
	_ = store.MergeField(a.Fields, "isAuthenticated", &next.IsAuthenticated)
	_ = store.MergeField(a.Fields, "isLoading", &next.IsLoading)
	_ = store.MergeField(a.Fields, "error", &next.Error)
	_ = store.MergeField(a.Fields, "sessionToken", &next.SessionToken)

	users := next.Users
	if err := store.MergeField(a.Fields, "users", &users); err == nil {
		if users == nil {
			users = []schema.Principal{}
		}
		next.Users = users
	}

	return next
}

func clonePrincipal(p *schema.Principal) *schema.Principal {
	if p == nil {
		return nil
	}
	c := p.Clone()
	return &c
}
