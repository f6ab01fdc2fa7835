package assistant

import (
	"fmt"

	"develevate/pkg/schema"
)

// studyBuddyTemplate is the fixed instruction sent ahead of every question.
// The first %s is the category and the second is the user message.
const studyBuddyTemplate = `
You are Study Buddy, an AI mentor who gives concise, clear, and structured answers for %s questions.

Respond using Markdown with the following format:

## 📌 Summary  
Brief 1-line summary of the concept.

## Key Concepts
- Important point 1
- Important point 2

## 💡 Example

` + "```ts" + `
// Relevant code or example here
` + "```" + `

## ✅ Conclusion  
Wrap up with a useful tip or reminder.

User: %s
`

// BuildStudyBuddyPrompt wraps a user message in the Study Buddy instructions.
func BuildStudyBuddyPrompt(category schema.MessageCategory, message string) string {
	if category == "" {
		category = schema.CategoryGeneral
	}
	return fmt.Sprintf(studyBuddyTemplate, category, message)
}

var suggestedQuestions = map[schema.MessageCategory][]string{
	schema.CategoryLearning: {
		"Explain Big O notation",
		"How do I approach dynamic programming?",
		"What is the difference between React and Angular?",
		"How to prepare for coding interviews?",
	},
	schema.CategoryCareer: {
		"How to write a good resume?",
		"What questions to ask in an interview?",
		"How to negotiate salary?",
		"Tips for switching careers to tech?",
	},
	schema.CategoryGeneral: {
		"Motivate me to keep learning",
		"How to manage study time effectively?",
		"Latest tech trends to follow",
		"How to build a portfolio?",
	},
}

// SuggestedQuestions returns the starter questions offered for a category.
func SuggestedQuestions(category schema.MessageCategory) []string {
	if category == "" {
		category = schema.CategoryGeneral
	}
	return append([]string(nil), suggestedQuestions[category]...)
}
