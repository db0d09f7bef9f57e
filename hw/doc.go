// Package hw binds the bus capture to a Linux host.
//
// The enable line of the display bus is watched through the GPIO character
// device, the resync output is driven through periph.io, and the shifted
// bytes arrive from a serial bridge.
package hw
