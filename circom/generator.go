package circom

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/novafold/input"
)

// stepInSignal is the signal name under which the running public state is
// handed to the witness generator.
const stepInSignal = "stepIn"

// Generator computes per-step witnesses by invoking a native circom
// witness-generator binary: it writes the step signals plus the running
// public state to a JSON file, runs the binary, and parses the resulting
// .wtns file. It satisfies fold.WitnessGenerator.
type Generator struct {
	binary string
}

// NewGenerator returns a Generator backed by the binary at path. The
// binary is not checked until the first Generate call.
func NewGenerator(path string) *Generator {
	return &Generator{binary: path}
}

// Generate runs the witness binary for one step and returns the full
// variable assignment in wire order.
func (g *Generator) Generate(step input.Signals, state []fr.Element) ([]fr.Element, error) {
	dir, err := os.MkdirTemp("", "novafold-wtns-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "input.json")
	witnessPath := filepath.Join(dir, "witness.wtns")

	doc, err := stepDocument(step, state)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(inputPath, doc, 0o600); err != nil {
		return nil, err
	}

	cmd := exec.Command(g.binary, inputPath, witnessPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("witness generator %s: %w: %s", g.binary, err, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, fmt.Errorf("witness generator %s: %w", g.binary, err)
	}

	return ReadWitness(witnessPath)
}

// stepDocument merges the private signals with the running public state
// under the stepIn signal, preserving signal order.
func stepDocument(step input.Signals, state []fr.Element) ([]byte, error) {
	merged := step.Clone()
	vals := make([]input.Value, len(state))
	for i := range state {
		vals[i] = input.NewScalar(state[i])
	}
	merged.Set(stepInSignal, input.NewList(vals))
	return merged.MarshalJSON()
}
