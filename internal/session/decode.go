package session

import (
	"bytes"

	"develevate/internal/store"
	"develevate/pkg/schema"
)

type authPayload struct {
	User  schema.Principal `json:"user"`
	Token string           `json:"token"`
}

// DecodeAction converts a JSON action into a session action. Tags outside the
// vocabulary decode to Unknown; payloads that do not fit their tag fail with
// store.ErrInvalidActionPayload.
func DecodeAction(raw store.RawAction) (Action, error) {
	switch raw.Type {
	case TypeLoginStart:
		return LoginStart{}, nil
	case TypeRegisterStart:
		return RegisterStart{}, nil
	case TypeLoginSuccess:
		p, err := store.DecodePayload[authPayload](raw)
		if err != nil {
			return nil, err
		}
		return LoginSuccess{User: p.User, Token: p.Token}, nil
	case TypeRegisterSuccess:
		p, err := store.DecodePayload[authPayload](raw)
		if err != nil {
			return nil, err
		}
		return RegisterSuccess{User: p.User, Token: p.Token}, nil
	case TypeLoginFailure:
		msg, err := store.DecodePayload[string](raw)
		if err != nil {
			return nil, err
		}
		return LoginFailure{Message: msg}, nil
	case TypeRegisterFailure:
		msg, err := store.DecodePayload[string](raw)
		if err != nil {
			return nil, err
		}
		return RegisterFailure{Message: msg}, nil
	case TypeLogout:
		return Logout{}, nil
	case TypeUpdateProfile:
		patch, err := store.DecodePayload[schema.ProfilePatch](raw)
		if err != nil {
			return nil, err
		}
		return UpdateProfile{Patch: patch}, nil
	case TypeChangePasswordSuccess:
		return ChangePasswordSuccess{}, nil
	case TypeLoadUsers:
		users, err := store.DecodePayload[[]schema.Principal](raw)
		if err != nil {
			return nil, err
		}
		return LoadUsers{Users: users}, nil
	case TypeUpdateUser:
		user, err := store.DecodePayload[schema.Principal](raw)
		if err != nil {
			return nil, err
		}
		return UpdateUser{User: user}, nil
	case TypeDeleteUser:
		id, err := store.DecodePayload[string](raw)
		if err != nil {
			return nil, err
		}
		return DeleteUser{ID: id}, nil
	case TypeClearError:
		return ClearError{}, nil
	case TypeSetPrincipal:
		if p := bytes.TrimSpace(raw.Payload); len(p) == 0 || bytes.Equal(p, []byte("null")) {
			return SetPrincipal{}, nil
		}
		user, err := store.DecodePayload[schema.Principal](raw)
		if err != nil {
			return nil, err
		}
		return SetPrincipal{User: &user}, nil
	case TypeHydrate:
		fields, err := store.DecodePayload[store.Fields](raw)
		if err != nil {
			return nil, err
		}
		return Hydrate{Fields: fields}, nil
	default:
		return Unknown{Type: raw.Type}, nil
	}
}
