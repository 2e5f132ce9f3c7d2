package problemgen

import (
	"fmt"
	"strconv"
)

// QuestionType identifies which generator produced a question. It is a
// closed set: grading and display switch over every member.
type QuestionType int

const (
	// TypeNone means "no previous question" for the selection policy.
	TypeNone QuestionType = iota
	TypeAddition
	TypeSubtraction
	TypeComparison
	TypeMultipleChoiceAddition
	TypeStoryAddition
	TypeFillInBlankAddition
	TypeOrdering
	TypeSequence
	// TypeAIStory is produced only by the remote story service.
	TypeAIStory
)

var typeNames = map[QuestionType]string{
	TypeNone:                   "none",
	TypeAddition:               "addition",
	TypeSubtraction:            "subtraction",
	TypeComparison:             "comparison",
	TypeMultipleChoiceAddition: "multiple-choice-addition",
	TypeStoryAddition:          "story-addition",
	TypeFillInBlankAddition:    "fill-in-blank-addition",
	TypeOrdering:               "ordering",
	TypeSequence:               "sequence",
	TypeAIStory:                "ai-story",
}

func (t QuestionType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("QuestionType(%d)", int(t))
}

// ParseQuestionType is the inverse of QuestionType.String.
func ParseQuestionType(s string) (QuestionType, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown question type %q", s)
}

// Numeric reports whether questions of this type expect a number.
func (t QuestionType) Numeric() bool {
	switch t {
	case TypeAddition, TypeSubtraction, TypeStoryAddition,
		TypeFillInBlankAddition, TypeSequence, TypeAIStory:
		return true
	default:
		return false
	}
}

// Difficulty selects the numeric range used for operands.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Levels returns all difficulties from easiest to hardest.
func Levels() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Range returns the maximum operand value R for the difficulty.
// Unknown values are treated as Easy.
func (d Difficulty) Range() int {
	switch d {
	case Medium:
		return 15
	case Hard:
		return 20
	default:
		return 10
	}
}

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// Answer is the correct answer to a question: either a number or a string.
type Answer struct {
	isNumber bool
	number   int
	text     string
}

// NumberAnswer returns a numeric answer.
func NumberAnswer(n int) Answer { return Answer{isNumber: true, number: n} }

// TextAnswer returns a string answer.
func TextAnswer(s string) Answer { return Answer{text: s} }

// IsNumber reports whether the answer is numeric.
func (a Answer) IsNumber() bool { return a.isNumber }

// Number returns the numeric value. It is zero for string answers.
func (a Answer) Number() int { return a.number }

// String returns the canonical string form, which is what options hold.
func (a Answer) String() string {
	if a.isNumber {
		return strconv.Itoa(a.number)
	}
	return a.text
}

// Question represents a generated math question ready for display.
type Question struct {
	// Type is the generator that produced the question.
	Type QuestionType

	// Text is the prompt shown to the learner. It never contains the answer
	// in a position the learner could copy.
	Text string

	// Options is set only for choice-style questions (comparison, multiple
	// choice). When set, it contains Answer.String().
	Options []string

	// Answer is the correct answer.
	Answer Answer
}

// HasOptions reports whether the learner picks from a list.
func (q Question) HasOptions() bool { return len(q.Options) > 0 }
