package problemgen

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MaxAttempts bounds how many times Generate redraws a strategy while it
// keeps producing the previous question's type. The last draw is returned
// even if it repeats.
const MaxAttempts = 5

// Strategy produces one question at the given difficulty.
type Strategy func(d Difficulty) Question

// Generator produces local arithmetic questions. The zero value is not
// usable; construct with New.
type Generator struct {
	src        Source
	strategies []Strategy
}

// New creates a Generator that draws from src. A nil src uses DefaultSource.
func New(src Source) *Generator {
	if src == nil {
		src = DefaultSource
	}
	g := &Generator{src: src}
	g.strategies = []Strategy{
		g.Addition,
		g.Subtraction,
		g.Comparison,
		g.MultipleChoiceAddition,
		g.StoryAddition,
		g.FillInBlankAddition,
		g.Ordering,
		g.Sequence,
	}
	return g
}

var defaultGenerator = New(nil)

// Generate produces a question with the default generator.
func Generate(d Difficulty, last QuestionType) Question {
	return defaultGenerator.Generate(d, last)
}

// Generate picks a strategy uniformly at random and runs it, redrawing up
// to MaxAttempts times while the result has the same type as last.
func (g *Generator) Generate(d Difficulty, last QuestionType) Question {
	var q Question
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		q = pick(g.src, g.strategies)(d)
		if q.Type != last {
			break
		}
	}
	return q
}

// Addition asks for the sum of two numbers in [1, R].
func (g *Generator) Addition(d Difficulty) Question {
	a, b := g.src.number(d), g.src.number(d)
	return Question{
		Type:   TypeAddition,
		Text:   fmt.Sprintf("%d + %d = ?", a, b),
		Answer: NumberAnswer(a + b),
	}
}

// Subtraction always subtracts the smaller operand from the larger one,
// so the answer is never negative.
func (g *Generator) Subtraction(d Difficulty) Question {
	a, b := g.src.number(d), g.src.number(d)
	big, small := max(a, b), min(a, b)
	return Question{
		Type:   TypeSubtraction,
		Text:   fmt.Sprintf("%d - %d = ?", big, small),
		Answer: NumberAnswer(big - small),
	}
}

// Comparison options, in display order.
var comparisonOptions = []string{"<", ">", "="}

// Comparison asks which relation holds between two numbers.
func (g *Generator) Comparison(d Difficulty) Question {
	a, b := g.src.number(d), g.src.number(d)
	rel := "="
	switch {
	case a > b:
		rel = ">"
	case a < b:
		rel = "<"
	}
	return Question{
		Type:    TypeComparison,
		Text:    fmt.Sprintf("Which sign goes in the blank? %d ___ %d", a, b),
		Options: slices.Clone(comparisonOptions),
		Answer:  TextAnswer(rel),
	}
}

// maxDistractorDraws bounds the random phase of distractor generation.
const maxDistractorDraws = 32

// MultipleChoiceAddition offers the sum and three distinct non-negative
// distractors within 5 of it, shuffled. The answer is the option text of
// the sum.
func (g *Generator) MultipleChoiceAddition(d Difficulty) Question {
	a, b := g.src.number(d), g.src.number(d)
	sum := a + b
	return Question{
		Type:    TypeMultipleChoiceAddition,
		Text:    fmt.Sprintf("Choose the correct answer: %d + %d = ?", a, b),
		Options: g.choices(sum),
		Answer:  TextAnswer(strconv.Itoa(sum)),
	}
}

// choices returns four distinct options containing correct. Random draws
// come first; if the source keeps repeating itself the set is completed
// deterministically with correct+1, correct-1, correct+2, ...
func (g *Generator) choices(correct int) []string {
	set := []int{correct}
	add := func(v int) {
		if v >= 0 && !slices.Contains(set, v) {
			set = append(set, v)
		}
	}
	for draw := 0; draw < maxDistractorDraws && len(set) < 4; draw++ {
		offset := g.src.intn(5) + 1
		if g.src() > 0.5 {
			add(correct + offset)
		} else {
			add(correct - offset)
		}
	}
	for offset := 1; len(set) < 4; offset++ {
		add(correct + offset)
		if len(set) < 4 {
			add(correct - offset)
		}
	}

	opts := make([]string, len(set))
	for i, v := range set {
		opts[i] = strconv.Itoa(v)
	}
	shuffle(g.src, opts)
	return opts
}

// StoryAddition wraps an addition in a short story about a child and some
// everyday items.
func (g *Generator) StoryAddition(d Difficulty) Question {
	name := pick(g.src, storyNames)
	item := pick(g.src, storyItems)
	a, b := g.src.number(d), g.src.number(d)
	return Question{
		Type: TypeStoryAddition,
		Text: fmt.Sprintf("%s has %d %s, and a friend gives them %d more %s. How many %s does %s have now?",
			name, a, item, b, item, item, name),
		Answer: NumberAnswer(a + b),
	}
}

// FillInBlankAddition shows the sum and hides the second addend.
func (g *Generator) FillInBlankAddition(d Difficulty) Question {
	a, b := g.src.number(d), g.src.number(d)
	return Question{
		Type:   TypeFillInBlankAddition,
		Text:   fmt.Sprintf("Fill in the blank: %d + ___ = %d", a, a+b),
		Answer: NumberAnswer(b),
	}
}

// maxOrderingDraws bounds rejection sampling in Ordering.
const maxOrderingDraws = 64

// Ordering shows 3 (easy) or 4 distinct numbers in random order; the answer
// lists them ascending, separated by single spaces.
func (g *Generator) Ordering(d Difficulty) Question {
	count := 4
	if d == Easy {
		count = 3
	}
	nums := make([]int, 0, count)
	for draw := 0; draw < maxOrderingDraws && len(nums) < count; draw++ {
		if n := g.src.number(d); !slices.Contains(nums, n) {
			nums = append(nums, n)
		}
	}
	for n := 1; len(nums) < count; n++ {
		if !slices.Contains(nums, n) {
			nums = append(nums, n)
		}
	}

	shown := slices.Clone(nums)
	shuffle(g.src, shown)
	return Question{
		Type:   TypeOrdering,
		Text:   "Put these numbers in order from smallest to largest: " + joinInts(shown, ", "),
		Answer: TextAnswer(orderingAnswer(nums)),
	}
}

// orderingAnswer sorts a copy of nums ascending and joins with spaces.
func orderingAnswer(nums []int) string {
	sorted := slices.Clone(nums)
	slices.Sort(sorted)
	return joinInts(sorted, " ")
}

// Sequence shows an arithmetic progression with its third term hidden.
// Start and step do not depend on difficulty.
func (g *Generator) Sequence(_ Difficulty) Question {
	start := g.src.intn(5) + 1
	step := g.src.intn(3) + 1
	terms := sequenceTerms(start, step)
	return Question{
		Type:   TypeSequence,
		Text:   "Find the missing number in the pattern: " + strings.Join(terms, ", "),
		Answer: NumberAnswer(start + 2*step),
	}
}

// sequenceTerms returns the four displayed terms, the third one blanked.
func sequenceTerms(start, step int) []string {
	return []string{
		strconv.Itoa(start),
		strconv.Itoa(start + step),
		"___",
		strconv.Itoa(start + 3*step),
	}
}

func joinInts(nums []int, sep string) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
