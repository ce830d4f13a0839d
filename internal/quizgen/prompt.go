package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice quizzes for self-paced learners.

Rules:
- Every question is about the requested topic and matches the requested difficulty.
- Each question has exactly 4 options and exactly one of them is correct.
- The answer field must repeat the correct option exactly, character for character.
- Distractors should be plausible mistakes, not obviously wrong filler.
- Number questions with id starting at 1.
- Keep explanations to one or two sentences.
- Return raw JSON only. No markdown.`

// buildUserMessage renders the per-quiz request.
func buildUserMessage(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", in.count())
	return b.String()
}
