package problemgen

import (
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against the correct answer.
// Returns true if the answer is correct.
//
// Normalization rules:
// - Whitespace is trimmed
// - Numeric types compare as integers (e.g., "007" matches "7")
// - Ordering collapses runs of whitespace between numbers
// - Comparison and multiple choice must match the option text exactly
func CheckAnswer(input string, q Question) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	switch q.Type {
	case TypeAddition, TypeSubtraction, TypeStoryAddition,
		TypeFillInBlankAddition, TypeSequence, TypeAIStory:
		return checkNumber(input, q.Answer)
	case TypeMultipleChoiceAddition, TypeComparison:
		return input == q.Answer.String()
	case TypeOrdering:
		return strings.Join(strings.Fields(input), " ") == q.Answer.String()
	default:
		return input == q.Answer.String()
	}
}

func checkNumber(input string, answer Answer) bool {
	n, err := strconv.Atoi(input)
	if err != nil {
		return false
	}
	if !answer.IsNumber() {
		return strconv.Itoa(n) == answer.String()
	}
	return n == answer.Number()
}
