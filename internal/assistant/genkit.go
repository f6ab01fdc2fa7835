package assistant

import (
	"context"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// ModelName is the genkit name the Study Buddy generator is registered under.
const ModelName = "develevate/study-buddy"

// RegisterGenerator registers gen as a genkit model and returns it. Each call
// gets its own genkit registry.
func RegisterGenerator(ctx context.Context, name string, gen Generator) ai.Model {
	if name == "" {
		name = ModelName
	}

	g := genkit.Init(ctx)

	return genkit.DefineModel(
		g,
		name,
		&ai.ModelOptions{
			Label: "Study Buddy",
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
			},
		},
		func(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
			text, err := gen.Generate(ctx, requestText(req))
			if err != nil {
				return nil, err
			}
			return &ai.ModelResponse{
				Request: req,
				Message: &ai.Message{
					Role: ai.RoleModel,
					Content: []*ai.Part{
						ai.NewTextPart(text),
					},
				},
			}, nil
		},
	)
}

// requestText flattens the text parts of every message in req.
func requestText(req *ai.ModelRequest) string {
	var b strings.Builder
	for _, msg := range req.Messages {
		for _, part := range msg.Content {
			if part.IsText() {
				b.WriteString(part.Text)
			}
		}
	}
	return b.String()
}
