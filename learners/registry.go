// Package learners maps learner names to constructors.
//
// The command line resolves the requested learner through Lookup before
// any data is loaded, so an unknown or unimplemented learner fails fast.
package learners

import (
	"sort"
	"strings"

	"github.com/YuminosukeSato/mlsys/baseline"
	"github.com/YuminosukeSato/mlsys/core/model"
	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/linear"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Kind identifies a learner implementation.
type Kind int

const (
	KindBaseline Kind = iota
	KindLinear
	KindPerceptron
	KindNeuralNet
	KindDecisionTree
	KindKNN
)

var kindNames = map[Kind]string{
	KindBaseline:     "baseline",
	KindLinear:       "linear",
	KindPerceptron:   "perceptron",
	KindNeuralNet:    "neuralnet",
	KindDecisionTree: "decisiontree",
	KindKNN:          "knn",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Constructor builds a fresh learner. rng is available to stochastic
// learners and must be the run's single random stream.
type Constructor func(rng relation.Source) model.Learner

var constructors = map[Kind]Constructor{
	KindBaseline: func(relation.Source) model.Learner { return baseline.New() },
	KindLinear:   func(relation.Source) model.Learner { return linear.New() },
}

// ParseKind resolves a learner name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == want {
			return k, nil
		}
	}
	return 0, errors.NewUnrecognizedLearnerError(name, nil)
}

// New constructs a learner of kind k.
func New(k Kind, rng relation.Source) (model.Learner, error) {
	ctor, ok := constructors[k]
	if !ok {
		return nil, errors.NewUnrecognizedLearnerError(k.String(), errors.ErrNotImplemented)
	}
	return ctor(rng), nil
}

// Lookup parses name and checks that it has a constructor.
func Lookup(name string) (Kind, error) {
	k, err := ParseKind(name)
	if err != nil {
		return 0, err
	}
	if _, ok := constructors[k]; !ok {
		return 0, errors.NewUnrecognizedLearnerError(name, errors.ErrNotImplemented)
	}
	return k, nil
}

// Names returns every known learner name in sorted order.
func Names() []string {
	names := make([]string, 0, len(kindNames))
	for _, n := range kindNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
