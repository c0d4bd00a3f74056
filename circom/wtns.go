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
	wtnsMagic   = 0x736e7477 // "wtns" little-endian
	wtnsVersion = 2

	wtnsSectionHeader = 1
	wtnsSectionValues = 2
)

// ReadWitness parses a binary circom witness file into the full variable
// assignment, in wire order (index 0 is the constant wire one).
func ReadWitness(path string) ([]fr.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open witness: %w", err)
	}
	defer f.Close()

	w, err := readWitness(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("parse witness %s: %w", path, err)
	}
	return w, nil
}

func readWitness(br *bufio.Reader) ([]fr.Element, error) {
	var magic, version, nbSections uint32
	if err := readU32(br, &magic); err != nil {
		return nil, err
	}
	if magic != wtnsMagic {
		return nil, fmt.Errorf("invalid magic 0x%x", magic)
	}
	if err := readU32(br, &version); err != nil {
		return nil, err
	}
	if version != wtnsVersion {
		return nil, fmt.Errorf("unsupported version %d", version)
	}
	if err := readU32(br, &nbSections); err != nil {
		return nil, err
	}

	var fieldSize, nbValues uint32
	var witness []fr.Element
	seenHeader := false
	for s := uint32(0); s < nbSections; s++ {
		var sType uint32
		var sSize uint64
		if err := readU32(br, &sType); err != nil {
			return nil, err
		}
		if err := binary.Read(br, binary.LittleEndian, &sSize); err != nil {
			return nil, err
		}

		switch sType {
		case wtnsSectionHeader:
			if err := readU32(br, &fieldSize); err != nil {
				return nil, err
			}
			if fieldSize != fr.Bytes {
				return nil, fmt.Errorf("unsupported field size %d bytes", fieldSize)
			}
			prime := make([]byte, fieldSize)
			if _, err := io.ReadFull(br, prime); err != nil {
				return nil, err
			}
			if new(big.Int).SetBytes(reverse(prime)).Cmp(fr.Modulus()) != 0 {
				return nil, fmt.Errorf("witness field is not the bn254 scalar field")
			}
			if err := readU32(br, &nbValues); err != nil {
				return nil, err
			}
			seenHeader = true
		case wtnsSectionValues:
			if !seenHeader {
				return nil, fmt.Errorf("value section before header")
			}
			witness = make([]fr.Element, nbValues)
			buf := make([]byte, fieldSize)
			for i := range witness {
				if _, err := io.ReadFull(br, buf); err != nil {
					return nil, err
				}
				witness[i].SetBytes(reverse(buf))
			}
		default:
			if _, err := io.CopyN(io.Discard, br, int64(sSize)); err != nil {
				return nil, err
			}
		}
	}
	if witness == nil {
		return nil, fmt.Errorf("missing value section")
	}
	return witness, nil
}
