package mimc

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"
)

// paramsTag identifies serialized parameter blobs. It is a format tag, not
// a compatibility fingerprint: two caches with the same tag may still come
// from different circuits.
const paramsTag = "novafold/mimc-params/v1"

// Params are the scheme's public parameters: the step circuit's shape plus
// a digest binding proofs to the parameters they were folded under.
type Params struct {
	PrimaryConstraints int
	PrimaryVariables   int
	Outputs            int
	Digest             fr.Element
}

// NbConstraints returns the per-step constraint counts of the primary and
// secondary circuits.
func (p *Params) NbConstraints() (primary, secondary int) {
	return p.PrimaryConstraints, secondaryNbConstraints
}

// NbVariables returns the per-step variable counts of the primary and
// secondary circuits.
func (p *Params) NbVariables() (primary, secondary int) {
	return p.PrimaryVariables, secondaryNbVariables
}

func (p *Params) digest() fr.Element {
	var a, b, c fr.Element
	a.SetUint64(uint64(p.PrimaryConstraints))
	b.SetUint64(uint64(p.PrimaryVariables))
	c.SetUint64(uint64(p.Outputs))
	return hashElements(a, b, c)
}

type paramsBlob struct {
	Tag                string `cbor:"1,keyasint"`
	PrimaryConstraints uint64 `cbor:"2,keyasint"`
	PrimaryVariables   uint64 `cbor:"3,keyasint"`
	Outputs            uint64 `cbor:"4,keyasint"`
	Digest             []byte `cbor:"5,keyasint"`
}

// WriteTo serializes the parameters.
func (p *Params) WriteTo(w io.Writer) (int64, error) {
	digest := p.Digest.Bytes()
	blob, err := cbor.Marshal(&paramsBlob{
		Tag:                paramsTag,
		PrimaryConstraints: uint64(p.PrimaryConstraints),
		PrimaryVariables:   uint64(p.PrimaryVariables),
		Outputs:            uint64(p.Outputs),
		Digest:             digest[:],
	})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(blob)
	return int64(n), err
}

// ReadFrom deserializes parameters written by WriteTo.
func (p *Params) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	var blob paramsBlob
	if err := cbor.Unmarshal(data, &blob); err != nil {
		return int64(len(data)), err
	}
	if blob.Tag != paramsTag {
		return int64(len(data)), fmt.Errorf("unexpected parameter blob tag %q", blob.Tag)
	}
	p.PrimaryConstraints = int(blob.PrimaryConstraints)
	p.PrimaryVariables = int(blob.PrimaryVariables)
	p.Outputs = int(blob.Outputs)
	p.Digest.SetBytes(blob.Digest)
	return int64(len(data)), nil
}
