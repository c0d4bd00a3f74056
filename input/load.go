// Package input loads the ordered per-step signal files consumed by a
// folding run and extracts the initial public state from step 0.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/novafold/logger"
)

// ErrMissingInitializer is returned when step 0 carries no recognized
// public initializer, or when its value does not parse as a field element.
var ErrMissingInitializer = errors.New("step 0 carries no usable public initializer")

// Batch is the full input of a folding run: the initial public state and
// one private signal set per step, in fold order.
type Batch struct {
	Z0    []fr.Element
	Steps []Signals
}

// initializerStrategy locates the public initializer in the step-0 signal
// set. Strategies are tried in order; the first key that is present wins.
type initializerStrategy struct {
	name string
	key  string
	get  func(Value) (fr.Element, bool)
}

var initializerStrategies = []initializerStrategy{
	{
		name: "scalar",
		key:  "inputHash",
		get: func(v Value) (fr.Element, bool) {
			return v.Scalar()
		},
	},
	{
		name: "arrayHead",
		key:  "stepIn",
		get: func(v Value) (fr.Element, bool) {
			list, ok := v.List()
			if !ok || len(list) == 0 {
				return fr.Element{}, false
			}
			return list[0].Scalar()
		},
	},
}

// Load reads iterations step files. pathTemplate must contain a single %d
// verb which is substituted with the zero-based step index; file-index
// order is fold order.
//
// The public initializer found at step 0 seeds Z0 and is removed from the
// step's signals: it is public state, not private witness material.
func Load(pathTemplate string, iterations int) (*Batch, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("iteration count must be positive, got %d", iterations)
	}
	if !strings.Contains(pathTemplate, "%d") {
		return nil, fmt.Errorf("input path template %q has no %%d index verb", pathTemplate)
	}
	log := logger.Logger()

	batch := &Batch{Steps: make([]Signals, iterations)}
	for i := 0; i < iterations; i++ {
		path := fmt.Sprintf(pathTemplate, i)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if err := json.Unmarshal(data, &batch.Steps[i]); err != nil {
			return nil, fmt.Errorf("step %d: parse %s: %w", i, path, err)
		}
	}

	z0, err := extractInitializer(&batch.Steps[0])
	if err != nil {
		return nil, err
	}
	batch.Z0 = []fr.Element{z0}

	log.Debug().Int("steps", iterations).Str("z0", z0.String()).Msg("loaded step inputs")
	return batch, nil
}

func extractInitializer(step *Signals) (fr.Element, error) {
	log := logger.Logger()
	for _, strat := range initializerStrategies {
		v, ok := step.Get(strat.key)
		if !ok {
			continue
		}
		z0, ok := strat.get(v)
		if !ok {
			return fr.Element{}, fmt.Errorf("%w: key %q does not hold a scalar", ErrMissingInitializer, strat.key)
		}
		step.Delete(strat.key)
		log.Info().Str("strategy", strat.name).Str("key", strat.key).Msg("public initializer extracted")
		return z0, nil
	}
	return fr.Element{}, ErrMissingInitializer
}
