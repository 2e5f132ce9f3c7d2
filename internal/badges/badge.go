// Package badges defines the fixed catalog of milestone badges and the rule
// for awarding them.
package badges

// Badge is a reward unlocked by reaching a count of correct answers.
type Badge struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Milestone int    `json:"milestone"`
}

// Label renders the badge as "icon name".
func (b Badge) Label() string {
	return b.Icon + " " + b.Name
}

// catalog is ordered by milestone.
var catalog = []Badge{
	{Name: "First Step", Icon: "🌟", Milestone: 1},
	{Name: "Quick Learner", Icon: "🚀", Milestone: 5},
	{Name: "Math Explorer", Icon: "🧭", Milestone: 10},
	{Name: "Number Ninja", Icon: "🥷", Milestone: 25},
	{Name: "Super Solver", Icon: "🦸", Milestone: 50},
	{Name: "Math Champion", Icon: "🏆", Milestone: 100},
}

// All returns the catalog in milestone order.
func All() []Badge {
	out := make([]Badge, len(catalog))
	copy(out, catalog)
	return out
}

// Earned returns the badge unlocked by reaching exactly correct answers,
// or nil when no milestone matches or the badge is already owned.
func Earned(correct int, owned []Badge) *Badge {
	for _, b := range catalog {
		if b.Milestone != correct {
			continue
		}
		if Has(owned, b.Name) {
			return nil
		}
		award := b
		return &award
	}
	return nil
}

// Has reports whether owned contains a badge with the given name.
func Has(owned []Badge, name string) bool {
	for _, b := range owned {
		if b.Name == name {
			return true
		}
	}
	return false
}

// Next returns the first badge whose milestone is above correct, and false
// once every milestone has been passed.
func Next(correct int) (Badge, bool) {
	for _, b := range catalog {
		if b.Milestone > correct {
			return b, true
		}
	}
	return Badge{}, false
}

// Progress returns how far correct is between the previous milestone and
// the next one, in [0, 1]. It is 1 after the final milestone.
func Progress(correct int) float64 {
	next, ok := Next(correct)
	if !ok {
		return 1
	}
	prev := 0
	for _, b := range catalog {
		if b.Milestone <= correct {
			prev = b.Milestone
		}
	}
	return float64(correct-prev) / float64(next.Milestone-prev)
}
