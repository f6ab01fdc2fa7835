// Package session holds the authentication store: who is signed in, the
// outcome of the last login attempt, and the administrative account list.
package session

import (
	"slices"

	"develevate/pkg/schema"
)

// Slot is the storage key of the persisted session state.
const Slot = "devElevateAuth"

// State is the session state tree.
type State struct {
	User            *schema.Principal  `json:"user"`
	IsAuthenticated bool               `json:"isAuthenticated"`
	IsLoading       bool               `json:"isLoading"`
	Error           string             `json:"error"`
	Users           []schema.Principal `json:"users"`
	SessionToken    string             `json:"sessionToken"`
}

// Initial returns the state of a process that has never signed in.
func Initial() State {
	return State{Users: []schema.Principal{}}
}

func clonePrincipals(in []schema.Principal) []schema.Principal {
	out := make([]schema.Principal, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// FindUser returns the listed principal with id.
func (s State) FindUser(id string) (schema.Principal, bool) {
	i := slices.IndexFunc(s.Users, func(p schema.Principal) bool { return p.ID == id })
	if i < 0 {
		return schema.Principal{}, false
	}
	return s.Users[i], true
}
