package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"develevate/internal/assistant"
	"develevate/internal/core"
	"develevate/pkg/schema"
)

// ChatSession is an interactive Study Buddy loop over a reader and writer.
type ChatSession struct {
	Bot      *assistant.Chatbot
	Category schema.MessageCategory
	In       io.Reader
	Out      io.Writer
}

// NewChatSession creates a chat session in the general category.
func NewChatSession(bot *assistant.Chatbot, in io.Reader, out io.Writer) *ChatSession {
	return &ChatSession{
		Bot:      bot,
		Category: schema.CategoryGeneral,
		In:       in,
		Out:      out,
	}
}

// Run reads one message per line until /quit or end of input.
func (s *ChatSession) Run(ctx context.Context) error {
	fmt.Fprintf(s.Out, "🤖 Study Buddy (%s). Type /help for commands.\n", s.Category)

	scanner := bufio.NewScanner(s.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(s.Out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if done := s.command(line); done {
				fmt.Fprintln(s.Out, "👋 Bye")
				return nil
			}
			continue
		}

		if err := s.send(ctx, line); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintln(s.Out)
	return nil
}

func (s *ChatSession) send(ctx context.Context, message string) error {
	fmt.Fprintln(s.Out, "💭 Thinking...")

	reply, err := s.Bot.Send(ctx, message, s.Category)
	if err != nil {
		var valErr *core.ValidationError
		if errors.As(err, &valErr) {
			fmt.Fprintf(s.Out, "⚠️  %v\n", valErr)
			return nil
		}
		return err
	}

	fmt.Fprintf(s.Out, "\n%s\n\n", reply.Content)
	return nil
}

// command handles a slash command and reports whether the session should end.
func (s *ChatSession) command(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true

	case "/category":
		c := schema.MessageCategory(strings.ToLower(arg))
		if c == "" || schema.ValidateMessageCategory(c) != nil {
			fmt.Fprintln(s.Out, "⚠️  category must be learning, career or general")
			return false
		}
		s.Category = c
		fmt.Fprintf(s.Out, "✅ Category: %s\n", c)

	case "/suggest":
		for _, q := range assistant.SuggestedQuestions(s.Category) {
			fmt.Fprintf(s.Out, "  • %s\n", q)
		}

	case "/help":
		fmt.Fprintln(s.Out, "  /category <learning|career|general>  switch mode")
		fmt.Fprintln(s.Out, "  /suggest                            show starter questions")
		fmt.Fprintln(s.Out, "  /quit                               leave")

	default:
		fmt.Fprintf(s.Out, "⚠️  unknown command %s\n", name)
	}
	return false
}
