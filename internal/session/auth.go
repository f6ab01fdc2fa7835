package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"develevate/internal/core"
	"develevate/internal/storage"
	"develevate/pkg/schema"

	"github.com/google/uuid"
)

// UsersSlot is the storage key of the account directory.
const UsersSlot = "devElevateUsers"

// Messages recorded in State.Error by the Authenticator.
const (
	MsgInvalidCredentials = "Invalid credentials or role"
	MsgInvalidPassword    = "Invalid password"
	MsgUserExists         = "User already exists"
	MsgLoginFailed        = "Login failed"
	MsgRegisterFailed     = "Registration failed"
)

// ErrIncorrectPassword is returned by ChangePassword when the current password does not match.
var ErrIncorrectPassword = errors.New("current password is incorrect")

// Directory is the list of registered accounts, kept in its own slot.
type Directory struct {
	storage storage.Storage
	mu      sync.Mutex
}

// NewDirectory creates a directory over st.
func NewDirectory(st storage.Storage) *Directory {
	return &Directory{storage: st}
}

// List returns all accounts. A missing slot is an empty directory.
func (d *Directory) List() ([]schema.Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.list()
}

func (d *Directory) list() ([]schema.Principal, error) {
	data, err := d.storage.Get(UsersSlot)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []schema.Principal{}, nil
		}
		return nil, &core.PersistenceError{Slot: UsersSlot, Operation: "load", Err: err}
	}

	var users []schema.Principal
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, &core.PersistenceError{Slot: UsersSlot, Operation: "decode", Err: err}
	}
	if users == nil {
		users = []schema.Principal{}
	}
	return users, nil
}

func (d *Directory) save(users []schema.Principal) error {
	data, err := json.Marshal(users)
	if err != nil {
		return &core.PersistenceError{Slot: UsersSlot, Operation: "encode", Err: err}
	}
	if err := d.storage.Set(UsersSlot, data); err != nil {
		return &core.PersistenceError{Slot: UsersSlot, Operation: "save", Err: err}
	}
	return nil
}

// Find returns the account matching pred.
func (d *Directory) Find(pred func(schema.Principal) bool) (schema.Principal, bool, error) {
	users, err := d.List()
	if err != nil {
		return schema.Principal{}, false, err
	}
	i := slices.IndexFunc(users, pred)
	if i < 0 {
		return schema.Principal{}, false, nil
	}
	return users[i], true, nil
}

// Add appends an account.
func (d *Directory) Add(p schema.Principal) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.list()
	if err != nil {
		return err
	}
	return d.save(append(users, p))
}

// Replace overwrites the account with the same id. It reports whether one was found.
func (d *Directory) Replace(p schema.Principal) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.list()
	if err != nil {
		return false, err
	}
	i := slices.IndexFunc(users, func(u schema.Principal) bool { return u.ID == p.ID })
	if i < 0 {
		return false, nil
	}
	users[i] = p
	return true, d.save(users)
}

// Remove deletes the account with id.
func (d *Directory) Remove(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.list()
	if err != nil {
		return err
	}
	return d.save(slices.DeleteFunc(users, func(u schema.Principal) bool { return u.ID == id }))
}

// Authenticator is a mock sign-in flow over a Directory. Every account shares
// one fixed password; it is a stand-in for a real identity provider and
// provides no security.
type Authenticator struct {
	store    *Store
	dir      *Directory
	password string
	logger   core.Logger
	now      func() time.Time
}

// NewAuthenticator creates an authenticator dispatching into s.
func NewAuthenticator(s *Store, dir *Directory, password string, logger core.Logger) *Authenticator {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &Authenticator{
		store:    s,
		dir:      dir,
		password: password,
		logger:   logger,
		now:      time.Now,
	}
}

// NewToken returns an opaque session token.
func NewToken() string {
	return "token_" + uuid.NewString()
}

// Login signs in the account with email and role. Wrong credentials are
// recorded in the store's Error field and are not returned; the returned error
// reports directory failures only.
func (a *Authenticator) Login(email, password string, role schema.Role) error {
	a.store.Dispatch(LoginStart{})

	email = strings.TrimSpace(email)
	user, ok, err := a.dir.Find(func(u schema.Principal) bool {
		return strings.EqualFold(u.Email, email) && u.Role == role
	})
	if err != nil {
		a.store.Dispatch(LoginFailure{Message: MsgLoginFailed})
		return fmt.Errorf("login: %w", err)
	}
	if !ok {
		a.logger.Info("login rejected", "email", email, "reason", "unknown account")
		a.store.Dispatch(LoginFailure{Message: MsgInvalidCredentials})
		return nil
	}
	if password != a.password {
		a.logger.Info("login rejected", "email", email, "reason", "password")
		a.store.Dispatch(LoginFailure{Message: MsgInvalidPassword})
		return nil
	}

	user.LastLogin = a.now()
	if _, err := a.dir.Replace(user); err != nil {
		a.logger.Warn("failed to record last login", "user", user.ID, "error", err)
	}

	a.logger.Info("login succeeded", "user", user.ID, "role", user.Role)
	a.store.Dispatch(LoginSuccess{User: user, Token: NewToken()})
	return nil
}

// Register creates an account and signs it in. Invalid input and duplicate
// emails are recorded in the store's Error field.
func (a *Authenticator) Register(name, email, password string, role schema.Role) error {
	a.store.Dispatch(RegisterStart{})

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := schema.ValidateRegistration(name, email, password, role); err != nil {
		a.store.Dispatch(RegisterFailure{Message: err.Error()})
		return nil
	}

	_, exists, err := a.dir.Find(func(u schema.Principal) bool { return strings.EqualFold(u.Email, email) })
	if err != nil {
		a.store.Dispatch(RegisterFailure{Message: MsgRegisterFailed})
		return fmt.Errorf("register: %w", err)
	}
	if exists {
		a.store.Dispatch(RegisterFailure{Message: MsgUserExists})
		return nil
	}

	id, err := schema.NewPrincipalID()
	if err != nil {
		a.store.Dispatch(RegisterFailure{Message: MsgRegisterFailed})
		return fmt.Errorf("generate principal id: %w", err)
	}

	now := a.now()
	user := schema.Principal{
		ID:          id,
		Name:        name,
		Email:       email,
		Role:        role,
		JoinDate:    now,
		LastLogin:   now,
		IsActive:    true,
		Preferences: schema.DefaultPreferences(),
		Progress: schema.PrincipalProgress{
			CoursesEnrolled: []string{},
			Level:           schema.DefaultLevel,
		},
	}

	if err := a.dir.Add(user); err != nil {
		a.store.Dispatch(RegisterFailure{Message: MsgRegisterFailed})
		return fmt.Errorf("register: %w", err)
	}

	a.logger.Info("registered user", "user", user.ID, "role", user.Role)
	a.store.Dispatch(RegisterSuccess{User: user, Token: NewToken()})
	return nil
}

// Logout signs the current principal out.
func (a *Authenticator) Logout() {
	a.store.Dispatch(Logout{})
}

// UpdateProfile applies patch to the signed-in principal and its directory
// entry. It does nothing when no one is signed in.
func (a *Authenticator) UpdateProfile(patch schema.ProfilePatch) error {
	current := a.store.GetState().User
	if current == nil {
		return nil
	}

	if _, err := a.dir.Replace(patch.Apply(*current)); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	a.store.Dispatch(UpdateProfile{Patch: patch})
	return nil
}

// ChangePassword checks the current password. Since all accounts share one
// fixed password the new one is only validated.
func (a *Authenticator) ChangePassword(current, next string) error {
	if current != a.password {
		return ErrIncorrectPassword
	}
	if len(next) < schema.PasswordMinimum {
		return &core.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", schema.PasswordMinimum),
		}
	}
	a.store.Dispatch(ChangePasswordSuccess{})
	return nil
}

// LoadUsers copies the directory into the store's administrative list.
func (a *Authenticator) LoadUsers() error {
	users, err := a.dir.List()
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	a.store.Dispatch(LoadUsers{Users: users})
	return nil
}

// UpdateUser replaces an account in the directory and the listed copy.
func (a *Authenticator) UpdateUser(p schema.Principal) error {
	if _, err := a.dir.Replace(p); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	a.store.Dispatch(UpdateUser{User: p})
	return nil
}

// DeleteUser removes an account from the directory and the listed copy.
func (a *Authenticator) DeleteUser(id string) error {
	if err := a.dir.Remove(id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	a.store.Dispatch(DeleteUser{ID: id})
	return nil
}
