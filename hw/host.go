package hw

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/ezrec/vfdtap/bus"
)

// Init loads the periph.io host drivers.
func Init() (err error) {
	_, err = host.Init()
	if err != nil {
		err = &ErrHost{Op: "host.Init", Err: err}
	}
	return
}

// ResyncPin returns the named GPIO as the resync output, driven low.
func ResyncPin(name string) (line bus.Line, err error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		err = &ErrHost{Op: name, Err: ErrPinUnknown}
		return
	}

	err = pin.Out(gpio.Low)
	if err != nil {
		err = &ErrHost{Op: name, Err: err}
		return
	}

	line = pin
	return
}
