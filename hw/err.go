package hw

import (
	"errors"

	"github.com/ezrec/vfdtap/translate"
)

var f = translate.From

var (
	ErrPinUnknown  = errors.New(f("gpio pin unknown"))
	ErrPortClosed  = errors.New(f("port closed"))
	ErrTriggerOpen = errors.New(f("enable trigger already open"))
)

type ErrHost struct {
	Op  string
	Err error
}

func (err ErrHost) Error() string {
	return f("%v: %v", err.Op, err.Err)
}

func (err ErrHost) Unwrap() error {
	return err.Err
}
