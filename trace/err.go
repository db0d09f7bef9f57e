package trace

import (
	"errors"

	"github.com/ezrec/vfdtap/translate"
)

var f = translate.From

var (
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrDirectiveUnknown = errors.New(f("directive unknown"))
	ErrArgCount         = errors.New(f("wrong argument count"))
	ErrShortLength      = errors.New(f("short length must be 0 to 3"))
	ErrFrameQuote       = errors.New(f("frame text must be quoted"))
	ErrFrameTooLong     = errors.New(f("frame text longer than 12 positions"))
	ErrFrameSeparator   = errors.New(f("no separator possible on position 0"))
	ErrPosition         = errors.New(f("position out of range"))
	ErrUnit             = errors.New(f("unit unknown"))
	ErrHighlightFull    = errors.New(f("at most 4 highlights per frame"))
)

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrFrameChar byte

func (err ErrFrameChar) Error() string {
	return f("'%c' has no segment pattern", rune(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrCapture struct {
	Offset int64
	Err    error
}

func (err ErrCapture) Error() string {
	return f("capture offset %d: %v", err.Offset, err.Err)
}

func (err ErrCapture) Unwrap() error {
	return err.Err
}
