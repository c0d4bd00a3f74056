// Package fold orchestrates an incremental-verifiable-computation run: it
// threads the public state through a sequence of per-step witness
// generations and folds, producing a single recursive proof artifact.
//
// The folding construction itself is an external capability behind the
// Scheme interface; this package owns parameter lifecycle, fold ordering
// and error propagation, not the cryptography.
package fold

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fr_grumpkin "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"
	"github.com/consensys/novafold/circom"
	"github.com/consensys/novafold/input"
)

// WitnessGenerator computes the full variable assignment for one step from
// the step's private signals and the running public state. Implementations
// may run in process, as a subprocess (see circom.Generator) or remotely.
type WitnessGenerator interface {
	Generate(step input.Signals, state []fr.Element) ([]fr.Element, error)
}

// PublicParams are the scheme's public parameters, derived from a circuit
// shape. They are expensive to produce and serializable so runs can reuse
// them; see Params.
type PublicParams interface {
	// NbConstraints returns the per-step constraint counts of the primary
	// and secondary circuits.
	NbConstraints() (primary, secondary int)
	// NbVariables returns the per-step variable counts of the primary and
	// secondary circuits.
	NbVariables() (primary, secondary int)

	io.WriterTo
	io.ReaderFrom
}

// Scheme is the external folding construction over the bn254/grumpkin
// two-curve cycle.
type Scheme interface {
	// Setup derives public parameters from the step circuit's shape.
	Setup(r1cs *circom.R1CS) (PublicParams, error)
	// NewParams returns an empty parameter object ready for ReadFrom.
	NewParams() PublicParams
	// NewProof starts an empty recursive proof anchored at the initial
	// public state z0.
	NewProof(pp PublicParams, z0 []fr.Element) (RecursiveProof, error)
}

// RecursiveProof is the accumulated proof artifact. After folding n steps
// it attests to all n executions at once.
type RecursiveProof interface {
	// Fold absorbs one step's full assignment and returns the next running
	// public state.
	Fold(assignment []fr.Element, state []fr.Element) ([]fr.Element, error)

	// Verify checks that the proof represents exactly numSteps folds
	// starting from z0 (and z0Secondary on the auxiliary curve). It
	// returns the final public state on success and a wrapped
	// ErrVerificationFailed on a normal negative outcome; any other error
	// is a scheme-internal fault.
	Verify(pp PublicParams, numSteps int, z0 []fr.Element, z0Secondary []fr_grumpkin.Element) ([]fr.Element, error)
}

// Z0Secondary returns the auxiliary curve's initial state required by the
// two-curve construction: a single zero element. It is a fixed constant,
// never derived from input files.
func Z0Secondary() []fr_grumpkin.Element {
	return make([]fr_grumpkin.Element, 1)
}
