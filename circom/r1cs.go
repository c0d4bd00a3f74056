// Package circom reads artifacts produced by the circom toolchain: compiled
// constraint systems (.r1cs), witness files (.wtns) and the native witness
// generator binaries that bridge the two.
//
// Only circuits compiled over the bn254 scalar field are accepted; the file
// prime is checked against fr.Modulus at load time.
package circom

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	r1csMagic   = 0x73633172 // "r1cs" little-endian
	r1csVersion = 1

	sectionHeader      = 1
	sectionConstraints = 2
	sectionWireMap     = 3
)

// Term is a single (wire, coefficient) entry of a linear combination.
type Term struct {
	WireID uint32
	Coeff  fr.Element
}

// LinearCombination is a sparse sum of terms over the circuit wires.
type LinearCombination []Term

// R1C is one rank-1 constraint a*b = c.
type R1C struct {
	A, B, C LinearCombination
}

// R1CS is the compiled step circuit. It is loaded once, shared by reference
// with every stage of a run and never mutated.
type R1CS struct {
	Constraints []R1C
	WireToLabel []uint64

	NbWires  uint32
	NbPubOut uint32
	NbPubIn  uint32
	NbPrvIn  uint32
	NbLabels uint64

	fieldSize uint32
}

// GetNbConstraints returns the number of constraints
func (r *R1CS) GetNbConstraints() int { return len(r.Constraints) }

// GetNbWires returns the total number of wires, including the constant wire one
func (r *R1CS) GetNbWires() int { return int(r.NbWires) }

// GetNbPublic returns the number of public input wires (outputs excluded)
func (r *R1CS) GetNbPublic() int { return int(r.NbPubIn) }

// GetNbSecret returns the number of private input wires
func (r *R1CS) GetNbSecret() int { return int(r.NbPrvIn) }

// GetNbOutputs returns the number of public output wires
func (r *R1CS) GetNbOutputs() int { return int(r.NbPubOut) }

// Load reads a binary circom constraint system from disk.
func Load(path string) (*R1CS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open r1cs: %w", err)
	}
	defer f.Close()

	var r R1CS
	if err := r.readFrom(bufio.NewReader(f)); err != nil {
		return nil, fmt.Errorf("parse r1cs %s: %w", path, err)
	}
	return &r, nil
}

func (r *R1CS) readFrom(br *bufio.Reader) error {
	var magic, version, nbSections uint32
	if err := readU32(br, &magic); err != nil {
		return err
	}
	if magic != r1csMagic {
		return fmt.Errorf("invalid magic 0x%x", magic)
	}
	if err := readU32(br, &version); err != nil {
		return err
	}
	if version != r1csVersion {
		return fmt.Errorf("unsupported version %d", version)
	}
	if err := readU32(br, &nbSections); err != nil {
		return err
	}

	// section order is not fixed by the format; the header must still be
	// decoded before constraints since it carries the field size.
	var nbConstraints uint32
	seenHeader := false
	for s := uint32(0); s < nbSections; s++ {
		var sType uint32
		var sSize uint64
		if err := readU32(br, &sType); err != nil {
			return err
		}
		if err := binary.Read(br, binary.LittleEndian, &sSize); err != nil {
			return err
		}

		switch sType {
		case sectionHeader:
			if err := r.readHeader(br, &nbConstraints); err != nil {
				return err
			}
			seenHeader = true
		case sectionConstraints:
			if !seenHeader {
				return fmt.Errorf("constraint section before header")
			}
			if err := r.readConstraints(br, nbConstraints); err != nil {
				return err
			}
		case sectionWireMap:
			if !seenHeader {
				return fmt.Errorf("wire map section before header")
			}
			if err := r.readWireMap(br); err != nil {
				return err
			}
		default:
			// custom sections (e.g. symbols) are skipped
			if _, err := io.CopyN(io.Discard, br, int64(sSize)); err != nil {
				return err
			}
		}
	}
	if !seenHeader {
		return fmt.Errorf("missing header section")
	}
	return nil
}

func (r *R1CS) readHeader(br *bufio.Reader, nbConstraints *uint32) error {
	if err := readU32(br, &r.fieldSize); err != nil {
		return err
	}
	if r.fieldSize != fr.Bytes {
		return fmt.Errorf("unsupported field size %d bytes", r.fieldSize)
	}
	prime := make([]byte, r.fieldSize)
	if _, err := io.ReadFull(br, prime); err != nil {
		return err
	}
	if new(big.Int).SetBytes(reverse(prime)).Cmp(fr.Modulus()) != 0 {
		return fmt.Errorf("circuit field is not the bn254 scalar field")
	}
	if err := readU32(br, &r.NbWires); err != nil {
		return err
	}
	if err := readU32(br, &r.NbPubOut); err != nil {
		return err
	}
	if err := readU32(br, &r.NbPubIn); err != nil {
		return err
	}
	if err := readU32(br, &r.NbPrvIn); err != nil {
		return err
	}
	if err := binary.Read(br, binary.LittleEndian, &r.NbLabels); err != nil {
		return err
	}
	return readU32(br, nbConstraints)
}

func (r *R1CS) readConstraints(br *bufio.Reader, nbConstraints uint32) error {
	r.Constraints = make([]R1C, nbConstraints)
	for i := range r.Constraints {
		for _, lc := range []*LinearCombination{&r.Constraints[i].A, &r.Constraints[i].B, &r.Constraints[i].C} {
			var err error
			if *lc, err = r.readLinearCombination(br); err != nil {
				return fmt.Errorf("constraint %d: %w", i, err)
			}
		}
	}
	return nil
}

func (r *R1CS) readLinearCombination(br *bufio.Reader) (LinearCombination, error) {
	var nbTerms uint32
	if err := readU32(br, &nbTerms); err != nil {
		return nil, err
	}
	lc := make(LinearCombination, nbTerms)
	buf := make([]byte, r.fieldSize)
	for j := range lc {
		if err := readU32(br, &lc[j].WireID); err != nil {
			return nil, err
		}
		if lc[j].WireID >= r.NbWires {
			return nil, fmt.Errorf("wire %d out of range", lc[j].WireID)
		}
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, err
		}
		lc[j].Coeff.SetBytes(reverse(buf))
	}
	return lc, nil
}

func (r *R1CS) readWireMap(br *bufio.Reader) error {
	r.WireToLabel = make([]uint64, r.NbWires)
	return binary.Read(br, binary.LittleEndian, r.WireToLabel)
}

func readU32(r io.Reader, v *uint32) error {
	return binary.Read(r, binary.LittleEndian, v)
}

// reverse returns a big-endian copy of a little-endian buffer.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
