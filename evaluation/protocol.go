// Package evaluation drives a learner through the training, static,
// random and cross evaluation protocols and measures its accuracy.
//
// A run is single-threaded. Every shuffle draws from the one Source
// configured with WithRand, in run order, so a fixed seed reproduces the
// whole run.
package evaluation

import (
	"strings"

	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Protocol selects how a dataset is split for evaluation.
type Protocol int

const (
	// Training trains and measures on the whole dataset.
	Training Protocol = iota
	// Static trains on the dataset and measures on a separate test set.
	Static
	// Random shuffles the dataset and holds out a suffix for testing.
	Random
	// Cross runs k-fold cross-validation.
	Cross
)

var protocolNames = [...]string{"training", "static", "random", "cross"}

func (p Protocol) String() string {
	if p < 0 || int(p) >= len(protocolNames) {
		return "unknown"
	}
	return protocolNames[p]
}

// ParseProtocol resolves a protocol name, case-insensitively.
func ParseProtocol(name string) (Protocol, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, n := range protocolNames {
		if n == want {
			return Protocol(i), nil
		}
	}
	return 0, errors.NewValidationError("evaluation", "must be one of training, static, random, cross", name)
}
