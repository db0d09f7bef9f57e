// Package profile names the label and unit annunciators of an instrument.
//
// The bus only says which annunciator is lit; what is printed next to it
// on the glass differs between instrument models.
package profile

import (
	"errors"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/vfdtap/translate"
)

var f = translate.From

const (
	LABEL_COUNT = 12 // One label per character position.
	UNIT_COUNT  = 5  // M, Hz, u, s, Gate on the counters.

	DEFAULT = "53131a"
)

var (
	ErrProfileLabels  = errors.New(f("profile needs exactly 12 labels"))
	ErrProfileUnits   = errors.New(f("profile needs exactly 5 units"))
	ErrProfileName    = errors.New(f("profile has no name"))
	ErrProfileUnknown = errors.New(f("profile unknown"))
)

// Profile holds annunciator names. Labels run left to right on the
// display, which is position 11 down to position 0.
type Profile struct {
	Name   string   `yaml:"name"`
	Labels []string `yaml:"labels"`
	Units  []string `yaml:"units"`
}

var builtin = map[string]*Profile{
	// 53131A, 53132A, 53181A and 58503 share the same glass.
	"53131a": {
		Name:   "53131a",
		Labels: []string{"Period", "Freq", "+Wid", "-Wid", "Rise", "Fall", "Time", "Ch1", "Ch2", "Ch3", "Limit", "ExtRef"},
		Units:  []string{"M", "Hz", "u", "s", "Gate"},
	},
	// Not verified on a real unit. "4W" may be a single annunciator.
	"34401a": {
		Name:   "34401a",
		Labels: []string{"*", "Adrs", "Rmt", "Man", "Trig", "Hold", "Mem", "Ratio", "Math", "ERROR", "Rear", "Shift"},
		Units:  []string{"4", "W", "[Cont]", "[???]", "[Diode]"},
	},
}

// Names lists the built-in profiles.
func Names() (names []string) {
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Lookup returns a copy of a built-in profile, matched case insensitively.
func Lookup(name string) (prof *Profile, err error) {
	found, ok := builtin[strings.ToLower(name)]
	if !ok {
		err = ErrProfileUnknown
		return
	}
	prof = found.Clone()
	return
}

// Default returns the profile for the 53131A family.
func Default() *Profile {
	return builtin[DEFAULT].Clone()
}

// Clone deep copies the profile.
func (prof *Profile) Clone() *Profile {
	return &Profile{
		Name:   prof.Name,
		Labels: slices.Clone(prof.Labels),
		Units:  slices.Clone(prof.Units),
	}
}

// Validate checks the annunciator counts.
func (prof *Profile) Validate() (err error) {
	switch {
	case len(prof.Name) == 0:
		err = ErrProfileName
	case len(prof.Labels) != LABEL_COUNT:
		err = ErrProfileLabels
	case len(prof.Units) != UNIT_COUNT:
		err = ErrProfileUnits
	}
	return
}

// Label returns the name shown beside character position pos.
func (prof *Profile) Label(pos int) string {
	return prof.Labels[LABEL_COUNT-1-pos]
}

// Load reads a YAML profile. Unknown keys are rejected.
func Load(r io.Reader) (prof *Profile, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	prof = &Profile{}
	err = dec.Decode(prof)
	if err != nil {
		prof = nil
		return
	}

	err = prof.Validate()
	if err != nil {
		prof = nil
		return
	}

	return
}

// Open resolves name as a built-in profile, or else as a YAML file path.
func Open(name string) (prof *Profile, err error) {
	prof, err = Lookup(name)
	if err == nil {
		return
	}

	inf, err := os.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	return Load(inf)
}
