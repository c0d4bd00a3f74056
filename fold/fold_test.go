package fold

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fr_grumpkin "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"
	"github.com/consensys/novafold/circom"
	"github.com/consensys/novafold/input"
)

// test doubles shared by the cache and driver tests

type fakeParams struct {
	Primary int `json:"primary"`
}

func (p *fakeParams) NbConstraints() (int, int) { return p.Primary, 0 }
func (p *fakeParams) NbVariables() (int, int)   { return p.Primary + 1, 0 }

func (p *fakeParams) WriteTo(w io.Writer) (int64, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (p *fakeParams) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	return int64(len(data)), json.Unmarshal(data, p)
}

type fakeScheme struct {
	setups  int
	foldErr map[int]error // fold index -> injected failure
}

func (s *fakeScheme) Setup(r1cs *circom.R1CS) (PublicParams, error) {
	s.setups++
	return &fakeParams{Primary: r1cs.GetNbWires()}, nil
}

func (s *fakeScheme) NewParams() PublicParams { return &fakeParams{} }

func (s *fakeScheme) NewProof(pp PublicParams, z0 []fr.Element) (RecursiveProof, error) {
	return &fakeProof{scheme: s, state: append([]fr.Element(nil), z0...)}, nil
}

type fakeProof struct {
	scheme *fakeScheme
	state  []fr.Element
	folds  int
}

func (p *fakeProof) Fold(assignment []fr.Element, state []fr.Element) ([]fr.Element, error) {
	if err := p.scheme.foldErr[p.folds]; err != nil {
		return nil, err
	}
	p.folds++
	var one fr.Element
	one.SetOne()
	next := append([]fr.Element(nil), state...)
	next[0].Add(&next[0], &one)
	p.state = next
	return next, nil
}

func (p *fakeProof) Verify(pp PublicParams, numSteps int, z0 []fr.Element, z0Secondary []fr_grumpkin.Element) ([]fr.Element, error) {
	if numSteps != p.folds {
		return nil, ErrVerificationFailed
	}
	return p.state, nil
}

type fakeGenerator struct {
	seen []fr.Element // first state element at each call
	fail map[int]error
}

func (g *fakeGenerator) Generate(step input.Signals, state []fr.Element) ([]fr.Element, error) {
	if err := g.fail[len(g.seen)]; err != nil {
		return nil, err
	}
	g.seen = append(g.seen, state[0])
	var one fr.Element
	one.SetOne()
	return []fr.Element{one, state[0]}, nil
}

var errInjected = errors.New("injected failure")
