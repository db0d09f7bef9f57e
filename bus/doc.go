// Package bus listens to the multiplexed display bus of the instrument.
//
// Each rising edge of the enable line announces one 4 byte transaction.
// The Receiver collects those bytes from a Port inside a fixed poll budget,
// resolves which gate the transaction drove, and feeds the Synchronizer,
// which tracks the 16 gate scan order and heals itself after glitches.
// Synchronized words land in the 16 slot store of a Context.
//
// A Context is shared between the capture handler and the render loop. Every
// access from either side runs inside the Context's Mask, which is the only
// synchronization primitive involved; on a host it is a mutex, on bare metal
// it would be an interrupt mask guard.
package bus
