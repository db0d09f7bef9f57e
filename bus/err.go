package bus

import (
	"errors"

	"github.com/ezrec/vfdtap/translate"
)

var f = translate.From

var (
	ErrFifoFull = errors.New(f("fifo full"))
)
