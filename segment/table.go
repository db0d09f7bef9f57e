package segment

// Mapping is one segment pattern and the character it shows.
type Mapping struct {
	Code uint16
	Char byte
}

// TABLE holds every pattern known to appear on the display.
// Digits come first, then the most frequent symbols and unit letters.
var TABLE = [...]Mapping{
	{0xc48c, '0'},
	{0x2040, '1'},
	{0xc08b, '2'},
	{0x4489, '3'},
	{0x040f, '4'},
	{0x4487, '5'},
	{0xc487, '6'},
	{0x0488, '7'},
	{0xc48f, '8'},
	{0x448f, '9'},
	{0x2043, '+'},
	{0x0003, '-'},
	{0x64c9, 'B'},
	{0x9014, 'V'},
	{0xc40b, 'd'},
	{0xa403, 'm'},
	{0x0000, ' '},
	{0xfcff, '#'},
	{0x1414, '%'},
	{0x0810, '('},
	{0x1020, ')'},
	{0x3873, '*'},
	{0x1010, '/'},
	{0x4003, '='},
	{0x208d, '?'},
	{0x848f, 'A'},
	{0xc084, 'C'},
	{0x64c8, 'D'},
	{0xc087, 'E'},
	{0x8087, 'F'},
	{0xc485, 'G'},
	{0x840f, 'H'},
	{0x60c0, 'I'},
	{0x8816, 'K'},
	{0xc004, 'L'},
	{0x843c, 'M'},
	{0x8c2c, 'N'},
	{0x808f, 'P'},
	{0xcc8c, 'Q'},
	{0x888f, 'R'},
	{0x44a1, 'S'},
	{0x20c0, 'T'},
	{0xc40c, 'U'},
	{0x9c0c, 'W'},
	{0x1830, 'X'},
	{0x2030, 'Y'},
	{0x5090, 'Z'},
}
