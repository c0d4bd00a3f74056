//go:build !windows

package circom

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/novafold/input"
	"github.com/stretchr/testify/require"
)

// stubGenerator writes a shell script that ignores its input document and
// copies a canned .wtns file to the requested output path.
func stubGenerator(t *testing.T, witness []fr.Element) string {
	t.Helper()
	dir := t.TempDir()

	wtnsPath := filepath.Join(dir, "canned.wtns")
	require.NoError(t, os.WriteFile(wtnsPath, wtnsBytes(witness), 0o600))

	script := filepath.Join(dir, "gen.sh")
	content := fmt.Sprintf("#!/bin/sh\ncp %q \"$2\"\n", wtnsPath)
	require.NoError(t, os.WriteFile(script, []byte(content), 0o700))
	return script
}

func TestGenerator(t *testing.T) {
	assert := require.New(t)

	witness := make([]fr.Element, 3)
	witness[0].SetOne()
	witness[1].SetInt64(11)
	witness[2].SetInt64(22)

	var step input.Signals
	var v fr.Element
	v.SetInt64(5)
	step.Set("msg", input.NewScalar(v))

	var z fr.Element
	z.SetInt64(1)
	gen := NewGenerator(stubGenerator(t, witness))
	got, err := gen.Generate(step, []fr.Element{z})
	assert.NoError(err)
	assert.Len(got, 3)
	assert.True(got[1].Equal(&witness[1]))
}

func TestGeneratorFailure(t *testing.T) {
	script := filepath.Join(t.TempDir(), "gen.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho boom >&2\nexit 3\n"), 0o700))

	var step input.Signals
	_, err := NewGenerator(script).Generate(step, nil)
	require.ErrorContains(t, err, "boom")
}

func TestStepDocumentKeepsSignalsIntact(t *testing.T) {
	assert := require.New(t)

	var step input.Signals
	var v fr.Element
	v.SetInt64(9)
	step.Set("a", input.NewScalar(v))

	var z fr.Element
	z.SetInt64(3)
	doc, err := stepDocument(step, []fr.Element{z})
	assert.NoError(err)
	assert.JSONEq(`{"a":"9","stepIn":["3"]}`, string(doc))

	// the caller's signal set must not gain the stepIn key
	_, ok := step.Get(stepInSignal)
	assert.False(ok)
}
