package tutor

import (
	"github.com/sirupsen/logrus"

	"github.com/abhisek/mathquest/internal/problemgen"
)

// Config holds story and hint generation settings.
type Config struct {
	// Model overrides the provider's configured model when set.
	Model string

	MaxTokens   int
	Temperature float64

	// Source drives the local fallback question. Nil uses
	// problemgen.DefaultSource.
	Source problemgen.Source

	// Logger receives failure diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

// DefaultConfig returns sensible defaults for story and hint generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.7,
	}
}
