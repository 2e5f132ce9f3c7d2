package tutor

import (
	"fmt"

	"github.com/abhisek/mathquest/internal/problemgen"
)

const systemPrompt = `You are a friendly math tutor for a six-year-old child. Use short, simple English words.`

func buildStoryPrompt(d problemgen.Difficulty) string {
	return fmt.Sprintf(`Write a very short and simple math story problem in English for a six-year-old child.
The problem must be about addition or subtraction and use only numbers between 1 and %d.
The final answer must be a positive whole number.
Return only a valid JSON object, with no other text and no code markers, with these keys:
"problem" (the text of the problem) and "answer" (the numeric answer).`, d.Range())
}

func buildHintPrompt(q problemgen.Question) string {
	return fmt.Sprintf(`Give a very simple one-sentence hint in English to help a child solve the following math problem. Do not give the final answer.
The problem is: %q`, q.Text)
}
