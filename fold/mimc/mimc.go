// Package mimc provides a folding-style accumulator behind the fold.Scheme
// interface, built on the bn254 MiMC hash. Each fold commits to the step's
// full assignment and chains the commitment into a transcript; the next
// running state is read from the circuit's public output wires, the same
// way a circom step circuit threads stepIn into stepOut.
//
// It is a stand-in for a full folding construction: it gives the driver,
// parameter cache and verifier real semantics to exercise, but it is not a
// succinct argument and attests to nothing cryptographically.
package mimc

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	fr_grumpkin "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"
	"github.com/consensys/novafold/circom"
	"github.com/consensys/novafold/fold"
)

// The secondary circuit of the construction is a fixed bookkeeping
// relation, independent of the step circuit.
const (
	secondaryNbConstraints = 16
	secondaryNbVariables   = 12
)

// Scheme implements fold.Scheme.
type Scheme struct{}

// Setup derives parameters from the step circuit's shape.
func (Scheme) Setup(r1cs *circom.R1CS) (fold.PublicParams, error) {
	p := &Params{
		PrimaryConstraints: r1cs.GetNbConstraints(),
		PrimaryVariables:   r1cs.GetNbWires(),
		Outputs:            r1cs.GetNbOutputs(),
	}
	p.Digest = p.digest()
	return p, nil
}

// NewParams returns an empty parameter object ready for ReadFrom.
func (Scheme) NewParams() fold.PublicParams {
	return &Params{}
}

// NewProof starts an empty proof anchored at z0.
func (Scheme) NewProof(pp fold.PublicParams, z0 []fr.Element) (fold.RecursiveProof, error) {
	p, ok := pp.(*Params)
	if !ok {
		return nil, fmt.Errorf("unexpected parameter type %T", pp)
	}
	pr := &proof{
		params: p.Digest,
		z0:     append([]fr.Element(nil), z0...),
		state:  append([]fr.Element(nil), z0...),
	}
	pr.transcript = hashElements(pr.z0...)
	return pr, nil
}

type proof struct {
	params      fr.Element
	z0          []fr.Element
	state       []fr.Element
	commitments []fr.Element
	transcript  fr.Element
}

// Fold absorbs one full assignment. The assignment follows circom wire
// order: constant one, public outputs, public inputs, private inputs; the
// next running state is the output block.
func (p *proof) Fold(assignment []fr.Element, state []fr.Element) ([]fr.Element, error) {
	if len(assignment) < 1+len(state) {
		return nil, fmt.Errorf("assignment has %d wires, need at least %d", len(assignment), 1+len(state))
	}
	if !assignment[0].IsOne() {
		return nil, errors.New("assignment constant wire is not one")
	}

	commitment := hashElements(assignment...)
	p.commitments = append(p.commitments, commitment)
	p.transcript = hashElements(p.transcript, commitment)

	next := append([]fr.Element(nil), assignment[1:1+len(state)]...)
	p.state = next
	return next, nil
}

// Verify checks fold count, initial state and transcript integrity. A
// wrong step count or initial state is a normal negative outcome; a
// parameter mismatch or a broken transcript chain is a scheme fault.
func (p *proof) Verify(pp fold.PublicParams, numSteps int, z0 []fr.Element, z0Secondary []fr_grumpkin.Element) ([]fr.Element, error) {
	params, ok := pp.(*Params)
	if !ok {
		return nil, fmt.Errorf("unexpected parameter type %T", pp)
	}
	if !params.Digest.Equal(&p.params) {
		return nil, errors.New("parameter mismatch: proof was folded under different public parameters")
	}

	// transcript must be reproducible from z0 and the fold commitments
	transcript := hashElements(p.z0...)
	for i := range p.commitments {
		transcript = hashElements(transcript, p.commitments[i])
	}
	if !transcript.Equal(&p.transcript) {
		return nil, errors.New("malformed artifact: transcript chain does not replay")
	}

	if numSteps != len(p.commitments) {
		return nil, fmt.Errorf("%w: artifact has %d folds, claimed %d", fold.ErrVerificationFailed, len(p.commitments), numSteps)
	}
	if !elementsEqual(z0, p.z0) {
		return nil, fmt.Errorf("%w: initial public state differs from the folded one", fold.ErrVerificationFailed)
	}
	for i := range z0Secondary {
		if !z0Secondary[i].IsZero() {
			return nil, fmt.Errorf("%w: secondary initial state is not zero", fold.ErrVerificationFailed)
		}
	}

	return append([]fr.Element(nil), p.state...), nil
}

func elementsEqual(a, b []fr.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

func hashElements(elems ...fr.Element) fr.Element {
	h := mimc.NewMiMC()
	for i := range elems {
		b := elems[i].Bytes()
		h.Write(b[:])
	}
	var out fr.Element
	out.SetBytes(h.Sum(nil))
	return out
}
