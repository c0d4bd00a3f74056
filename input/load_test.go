package input

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/consensys/novafold/logger"
)

func writeSteps(t *testing.T, docs []string) string {
	t.Helper()
	dir := t.TempDir()
	for i, doc := range docs {
		path := filepath.Join(dir, fmt.Sprintf("input_%d.json", i))
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	}
	return filepath.Join(dir, "input_%d.json")
}

func TestLoad(t *testing.T) {
	assert := require.New(t)

	tmpl := writeSteps(t, []string{
		`{"inputHash":"42","msg":"1"}`,
		`{"msg":"2"}`,
		`{"msg":"3"}`,
	})

	batch, err := Load(tmpl, 3)
	assert.NoError(err)
	assert.Len(batch.Steps, 3)
	assert.Len(batch.Z0, 1)
	assert.Equal("42", batch.Z0[0].String())

	// the initializer is public state, never witness material
	for i := range batch.Steps {
		_, ok := batch.Steps[i].Get("inputHash")
		assert.False(ok, "step %d still carries the initializer", i)
	}
	msg, ok := batch.Steps[0].Get("msg")
	assert.True(ok)
	e, _ := msg.Scalar()
	assert.Equal("1", e.String())
}

func TestLoadArrayHeadInitializer(t *testing.T) {
	assert := require.New(t)

	tmpl := writeSteps(t, []string{
		`{"stepIn":["7","8"],"msg":"1"}`,
		`{"msg":"2"}`,
	})

	batch, err := Load(tmpl, 2)
	assert.NoError(err)
	assert.Equal("7", batch.Z0[0].String())
	_, ok := batch.Steps[0].Get("stepIn")
	assert.False(ok)
}

// the bare-scalar convention wins over the array one when both are present
func TestLoadInitializerStrategyOrder(t *testing.T) {
	assert := require.New(t)

	tmpl := writeSteps(t, []string{
		`{"stepIn":["7"],"inputHash":"42"}`,
	})

	batch, err := Load(tmpl, 1)
	assert.NoError(err)
	assert.Equal("42", batch.Z0[0].String())
	// the losing convention stays in the witness material untouched
	_, ok := batch.Steps[0].Get("stepIn")
	assert.True(ok)
}

// the winning extraction strategy is named in the logs, not applied silently
func TestLoadLogsSelectedStrategy(t *testing.T) {
	assert := require.New(t)

	var logBuf bytes.Buffer
	logger.Set(zerolog.New(&logBuf))
	defer logger.Disable()

	tmpl := writeSteps(t, []string{
		`{"inputHash":"42"}`,
	})
	_, err := Load(tmpl, 1)
	assert.NoError(err)
	assert.Contains(logBuf.String(), "public initializer extracted")
	assert.Contains(logBuf.String(), `"strategy":"scalar"`)
}

func TestLoadMissingInitializer(t *testing.T) {
	tmpl := writeSteps(t, []string{
		`{"msg":"1"}`,
		`{"msg":"2"}`,
	})

	_, err := Load(tmpl, 2)
	require.ErrorIs(t, err, ErrMissingInitializer)
}

func TestLoadInitializerNotAScalar(t *testing.T) {
	tmpl := writeSteps(t, []string{
		`{"inputHash":["1","2"]}`,
	})

	_, err := Load(tmpl, 1)
	require.ErrorIs(t, err, ErrMissingInitializer)
}

func TestLoadMissingFile(t *testing.T) {
	tmpl := writeSteps(t, []string{
		`{"inputHash":"42"}`,
	})

	_, err := Load(tmpl, 2)
	require.Error(t, err)
	require.ErrorContains(t, err, "step 1")
}

func TestLoadBadTemplate(t *testing.T) {
	_, err := Load("inputs.json", 1)
	require.ErrorContains(t, err, "template")
}

func TestLoadBadIterationCount(t *testing.T) {
	_, err := Load("input_%d.json", 0)
	require.Error(t, err)
}
