package display

import (
	"strings"
)

// ChangeMask says which parts of a Display changed on the last Update, and
// which combined strings the last Combine rebuilt.
type ChangeMask uint8

const (
	CHANGE_TEXT   = ChangeMask(0x01) // Text, separators or highlights.
	CHANGE_LABELS = ChangeMask(0x02)
	CHANGE_UNITS  = ChangeMask(0x04)
	CHANGE_GATE   = ChangeMask(0x08)
	CHANGE_ALL    = ChangeMask(0x0f)

	CHANGE_TEXT_COMB   = ChangeMask(0x10) // TextCombined and HighlightsCombined.
	CHANGE_UNITS_COMB  = ChangeMask(0x20)
	CHANGE_LABELS_COMB = ChangeMask(0x40)
)

var changeNames = []struct {
	Mask ChangeMask
	Name string
}{
	{CHANGE_TEXT, "text"},
	{CHANGE_LABELS, "labels"},
	{CHANGE_UNITS, "units"},
	{CHANGE_GATE, "gate"},
	{CHANGE_TEXT_COMB, "text-comb"},
	{CHANGE_UNITS_COMB, "units-comb"},
	{CHANGE_LABELS_COMB, "labels-comb"},
}

// Has reports if any bit of other is set.
func (cm ChangeMask) Has(other ChangeMask) bool {
	return cm&other != 0
}

func (cm ChangeMask) String() string {
	var names []string
	for _, cn := range changeNames {
		if cm.Has(cn.Mask) {
			names = append(names, cn.Name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// copyCompare copies src over dst, reporting if any element differed.
func copyCompare[T comparable](dst, src []T) (changed bool) {
	for n := range src {
		if dst[n] != src[n] {
			dst[n] = src[n]
			changed = true
		}
	}
	return
}
