package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/reports/out.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "reports/out.json"), expanded)

	unchanged, err := ExpandPath("/tmp/out.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out.json", unchanged)
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "combined.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))

	assert.NoError(t, ValidatePath(file))
	assert.Error(t, ValidatePath(dir))
	assert.Error(t, ValidatePath(filepath.Join(dir, "absent.json")))
}

func TestReadWriteFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.json")

	require.NoError(t, WriteFileText(path, "[]\n"))

	text, err := ReadFileText(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", text)

	_, err = ReadFileText(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
