// Package bootstrap wires configuration, storage, both stores and the Study
// Buddy chatbot into an App for the command line.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"develevate/internal/appstate"
	"develevate/internal/assistant"
	"develevate/internal/core"
	"develevate/internal/session"
	"develevate/internal/storage"
	"develevate/pkg/schema"
)

// SQLiteFile is the database file name used by the sqlite backend.
const SQLiteFile = "develevate.db"

// ErrChatDisabled is returned when chat is requested without a Gemini API key.
var ErrChatDisabled = errors.New("chat disabled: set GEMINI_API_KEY")

// App holds the wired application.
type App struct {
	Config    *core.Config
	Logger    core.Logger
	Storage   storage.Storage
	Session   *session.Store
	State     *appstate.Store
	Directory *session.Directory
	Auth      *session.Authenticator

	chatbot     *assistant.Chatbot
	closer      io.Closer
	unsubscribe func()
}

type options struct {
	logger    core.Logger
	generator assistant.Generator
}

// Option customizes New.
type Option func(*options)

// WithLogger replaces the logger built from the config.
func WithLogger(logger core.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGenerator replaces the Gemini client behind the chatbot.
func WithGenerator(gen assistant.Generator) Option {
	return func(o *options) { o.generator = gen }
}

// New builds the application described by cfg.
func New(ctx context.Context, cfg *core.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = core.NewLogger(cfg.LogLevel)
	}

	st, closer, err := OpenStorage(cfg, o.logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Logger:  o.logger,
		Storage: st,
		closer:  closer,
	}

	app.Session = session.NewStore(st, o.logger)
	app.State = appstate.NewStore(st, appstate.Options{
		ChatHistoryLimit:     cfg.ChatHistoryLimit,
		NewsLimit:            cfg.NewsLimit,
		StrictGoalCompletion: cfg.StrictGoals,
	}, o.logger)
	app.Directory = session.NewDirectory(st)
	app.Auth = session.NewAuthenticator(app.Session, app.Directory, cfg.DemoPassword, o.logger)
	app.unsubscribe = app.Session.Subscribe(app.mirrorProfile)

	gen := o.generator
	if gen == nil && cfg.GeminiAPIKey != "" {
		client, err := assistant.NewGeminiClient(ctx, assistant.ConfigFromCore(cfg), o.logger)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("create chat client: %w", err)
		}
		o.logger.Info("study buddy enabled", "model", client.Model())
		gen = client
	}
	if gen != nil {
		model := assistant.RegisterGenerator(ctx, assistant.ModelName, gen)
		app.chatbot = assistant.NewChatbot(app.State, model, o.logger)
	}

	o.logger.Debug("application ready",
		"storage", cfg.Storage,
		"data_dir", cfg.DataDir,
		"chat", app.chatbot != nil,
	)

	return app, nil
}

// OpenStorage opens the backend named by cfg.Storage. The closer releases it
// and is nil for the memory backend.
func OpenStorage(cfg *core.Config, logger core.Logger) (storage.Storage, io.Closer, error) {
	switch cfg.Storage {
	case core.StorageMemory:
		return storage.NewMemory(), nil, nil

	case core.StorageSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
		db, err := storage.OpenSQLite(filepath.Join(cfg.DataDir, SQLiteFile))
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil

	case core.StorageFile:
		f, err := storage.OpenFile(cfg.DataDir, "develevate", logger)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil

	default:
		return nil, nil, &core.ValidationError{Field: "storage", Message: fmt.Sprintf("unknown backend %q", cfg.Storage)}
	}
}

// Chatbot returns the Study Buddy, or ErrChatDisabled without a generator.
func (a *App) Chatbot() (*assistant.Chatbot, error) {
	if a.chatbot == nil {
		return nil, ErrChatDisabled
	}
	return a.chatbot, nil
}

// Context returns a copy of ctx carrying both stores.
func (a *App) Context(ctx context.Context) context.Context {
	ctx = session.NewContext(ctx, a.Session)
	return appstate.NewContext(ctx, a.State)
}

// mirrorProfile keeps the application profile in step with the signed-in
// principal after every session change.
func (a *App) mirrorProfile(s session.State) {
	if !s.IsAuthenticated || s.User == nil {
		return
	}
	profile := schema.ProfileFromPrincipal(*s.User)
	if current := a.State.GetState().User; current != nil && sameProfile(*current, profile) {
		return
	}
	a.State.Dispatch(appstate.SetUser{User: &profile})
}

func sameProfile(a, b schema.Profile) bool {
	joined := a.JoinDate.Equal(b.JoinDate)
	a.JoinDate, b.JoinDate = time.Time{}, time.Time{}
	return joined && a == b
}

// Close stops the profile mirror and releases the storage backend.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
