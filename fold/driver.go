package fold

import (
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/novafold/input"
	"github.com/consensys/novafold/logger"
)

// Fold runs the full sequence: for each step, in file order, it asks gen
// for the step's full assignment against the running public state, then
// folds the assignment into the accumulated proof. The state returned by
// each fold feeds the next step.
//
// Any failure aborts the run with a StepError carrying the failing step
// index; no partial artifact is returned and nothing is persisted.
func Fold(scheme Scheme, gen WitnessGenerator, pp PublicParams, steps []input.Signals, z0 []fr.Element) (RecursiveProof, error) {
	log := logger.Logger()

	proof, err := scheme.NewProof(pp, z0)
	if err != nil {
		return nil, err
	}

	state := z0
	for i := range steps {
		start := time.Now()
		assignment, err := gen.Generate(steps[i], state)
		if err != nil {
			return nil, &StepError{Step: i, Err: err}
		}
		state, err = proof.Fold(assignment, state)
		if err != nil {
			return nil, &StepError{Step: i, Err: err}
		}
		log.Debug().Int("step", i).Dur("took", time.Since(start)).Msg("folded step")
	}
	return proof, nil
}
