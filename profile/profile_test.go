package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltin(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"34401a", "53131a"}, Names())

	for _, name := range Names() {
		prof, err := Lookup(name)
		assert.NoError(err)
		assert.NoError(prof.Validate(), name)
	}

	prof := Default()
	assert.Equal("53131a", prof.Name)
	assert.Equal("ExtRef", prof.Label(0))
	assert.Equal("Period", prof.Label(11))
	assert.Equal("Gate", prof.Units[4])

	_, err := Lookup("3458A")
	assert.ErrorIs(err, ErrProfileUnknown)

	prof, err = Lookup("34401A")
	assert.NoError(err)
	assert.Equal("Shift", prof.Label(0))
}

func TestLookupIsCopy(t *testing.T) {
	assert := assert.New(t)

	prof := Default()
	prof.Labels[0] = "changed"
	assert.Equal("Period", Default().Labels[0])
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	text := `
name: custom
labels: [a, b, c, d, e, f, g, h, i, j, k, l]
units: [M, Hz, u, s, Gate]
`
	prof, err := Load(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal("custom", prof.Name)
	assert.Equal("l", prof.Label(0))
	assert.Equal("a", prof.Label(11))
}

func TestLoadErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Text string
		Err  error
	}){
		{"name: x\nlabels: [a]\nunits: [M, Hz, u, s, Gate]\n", ErrProfileLabels},
		{"name: x\nlabels: [a, b, c, d, e, f, g, h, i, j, k, l]\nunits: [M]\n", ErrProfileUnits},
		{"labels: [a, b, c, d, e, f, g, h, i, j, k, l]\nunits: [M, Hz, u, s, Gate]\n", ErrProfileName},
	}

	for _, tc := range table {
		prof, err := Load(strings.NewReader(tc.Text))
		assert.ErrorIs(err, tc.Err, tc.Text)
		assert.Nil(prof)
	}

	// Unknown keys
	_, err := Load(strings.NewReader("name: x\ncolour: blue\n"))
	assert.Error(err)
}

func TestOpen(t *testing.T) {
	assert := assert.New(t)

	prof, err := Open("53131a")
	assert.NoError(err)
	assert.Equal("53131a", prof.Name)

	path := filepath.Join(t.TempDir(), "mine.yaml")
	err = os.WriteFile(path, []byte("name: mine\nlabels: [a, b, c, d, e, f, g, h, i, j, k, l]\nunits: [\"1\", \"2\", \"3\", \"4\", \"5\"]\n"), 0o644)
	assert.NoError(err)

	prof, err = Open(path)
	assert.NoError(err)
	assert.Equal("mine", prof.Name)
	assert.Equal([]string{"1", "2", "3", "4", "5"}, prof.Units)

	_, err = Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(err)
}
