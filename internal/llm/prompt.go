package llm

import "strings"

// Disclaimer is the sentence every answer is asked to include.
const Disclaimer = "This is information, not legal advice - consult your attorney for legal advice"

const questionMarker = "User's question about their case: "

// QuestionPlaceholder marks where the user's question goes in a Template.
const QuestionPlaceholder = "{{question}}"

// Template is an instructional preamble with a single QuestionPlaceholder.
type Template string

// DefaultTemplate is the Florida dependency case preamble.
const DefaultTemplate Template = `You are a knowledgeable assistant helping with a Florida juvenile dependency case.

CONTEXT: This is for a parent navigating their own dependency case in Florida family court.

KEY GUIDELINES:
- Provide specific, actionable information about Florida dependency procedures
- Reference Florida Statutes Chapter 39 when relevant
- Explain court processes, timelines, and parental rights clearly
- Be supportive but realistic about the legal process
- Always include "` + Disclaimer + `"
- If you're unsure about something, say so

` + questionMarker + QuestionPlaceholder + `

Provide helpful, specific information:`

// ComposePrompt inserts question verbatim into t. A template without the
// placeholder gets the question appended after a blank line.
func ComposePrompt(t Template, question string) string {
	s := string(t)
	if strings.Contains(s, QuestionPlaceholder) {
		return strings.Replace(s, QuestionPlaceholder, question, 1)
	}
	return s + "\n\n" + question
}
