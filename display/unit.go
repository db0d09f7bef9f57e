package display

// Unit indexes the unit annunciators, all carried by slot 0.
type Unit int

//go:generate go tool stringer -linecomment -type=Unit
const (
	UNIT_M    = Unit(0) // M
	UNIT_HZ   = Unit(1) // Hz
	UNIT_U    = Unit(2) // u
	UNIT_S    = Unit(3) // s
	UNIT_GATE = Unit(4) // Gate

	UNIT_COUNT = 5
	UNIT_TEXT  = 4 // Units that take part in UnitsCombined; Gate does not.
)
