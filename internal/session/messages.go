package session

import "fmt"

// Tutor messages shown by the presentation layer.
const (
	WelcomeMessage  = "Welcome to Math Quest! Pick a level to start."
	NewGameMessage  = "Let's go! Good luck, champ."
	ThinkingMessage = "Thinking of a new question for you..."
	PromptMessage   = "What is the right answer?"
	HintingMessage  = "Let me see how I can help..."
	HintUnavailable = "Sorry, I can't give a hint right now."
)

var correctMessages = []string{
	"Great job! 🎉",
	"You got it! ⭐",
	"Amazing, you're a math star!",
	"Correct! Keep it up!",
	"Wonderful! That's right!",
}

var incorrectMessages = []string{
	"Not quite. Try the next one!",
	"Oops! Don't give up!",
	"Almost! You'll get the next one.",
	"Keep trying, you're learning!",
}

func badgeMessage(name string) string {
	return fmt.Sprintf("Awesome! You earned a new badge: %s!", name)
}

func hintMessage(hint string) string {
	return "Hint: " + hint
}
