package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/firebase/genkit/go/ai"

	"develevate/internal/appstate"
	"develevate/internal/core"
	"develevate/pkg/schema"
)

// Replies recorded when the model gives nothing usable.
const (
	EmptyReply = "No response"
	ErrorReply = "No response due to an error"
)

// Chatbot runs Study Buddy conversations against the application store.
type Chatbot struct {
	store  *appstate.Store
	model  ai.Model
	logger core.Logger
	now    func() time.Time
}

// NewChatbot creates a chatbot that records its conversation in s.
func NewChatbot(s *appstate.Store, model ai.Model, logger core.Logger) *Chatbot {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &Chatbot{
		store:  s,
		model:  model,
		logger: logger,
		now:    time.Now,
	}
}

// Send records message as a user turn, asks the model and records the reply.
// A failed generation is recorded as ErrorReply and is not returned. When ctx
// is cancelled while waiting, no reply is recorded and ctx.Err() is returned.
func (c *Chatbot) Send(ctx context.Context, message string, category schema.MessageCategory) (schema.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return schema.ChatMessage{}, &core.ValidationError{Field: "message", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(message) > schema.ChatMessageMax {
		return schema.ChatMessage{}, &core.ValidationError{
			Field:   "message",
			Message: fmt.Sprintf("must be at most %d characters", schema.ChatMessageMax),
		}
	}
	if err := schema.ValidateMessageCategory(category); err != nil {
		return schema.ChatMessage{}, &core.ValidationError{Field: "category", Message: err.Error(), Err: err}
	}
	if category == "" {
		category = schema.CategoryGeneral
	}

	userMsg, err := c.newMessage(schema.MessageUser, message, category)
	if err != nil {
		return schema.ChatMessage{}, err
	}
	c.store.Dispatch(appstate.AddChatMessage{Message: userMsg})

	reply, genErr := c.ask(ctx, BuildStudyBuddyPrompt(category, message))
	if ctxErr := ctx.Err(); ctxErr != nil {
		c.logger.Info("chat reply dropped", "reason", ctxErr.Error())
		return schema.ChatMessage{}, ctxErr
	}

	content := strings.TrimSpace(reply)
	switch {
	case genErr != nil:
		c.logger.Warn("chat generation failed", "category", string(category), "error", genErr)
		content = ErrorReply
	case content == "":
		content = EmptyReply
	}

	aiMsg, err := c.newMessage(schema.MessageAI, content, category)
	if err != nil {
		return schema.ChatMessage{}, err
	}
	c.store.Dispatch(appstate.AddChatMessage{Message: aiMsg})

	return aiMsg, nil
}

func (c *Chatbot) ask(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.Generate(ctx, &ai.ModelRequest{
		Messages: []*ai.Message{ai.NewUserTextMessage(prompt)},
	}, nil)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Message == nil {
		return "", NewParseError("model returned no message", nil)
	}
	return resp.Text(), nil
}

func (c *Chatbot) newMessage(kind schema.MessageType, content string, category schema.MessageCategory) (schema.ChatMessage, error) {
	id, err := schema.NewMessageID()
	if err != nil {
		return schema.ChatMessage{}, fmt.Errorf("generate message id: %w", err)
	}
	return schema.ChatMessage{
		ID:        id,
		Type:      kind,
		Content:   content,
		Timestamp: c.now().UTC(),
		Category:  category,
	}, nil
}
