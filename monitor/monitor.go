// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package monitor

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/vfdtap/bus"
	"github.com/ezrec/vfdtap/display"
	"github.com/ezrec/vfdtap/internal"
	"github.com/ezrec/vfdtap/profile"
	"github.com/ezrec/vfdtap/translate"
)

const (
	TICK_MS = 100 // Default render tick.

	REVERSE_ON  = "\x1b[7m"
	REVERSE_OFF = "\x1b[27m"
)

var _monitor_defines = map[string]string{
	"TIMEOUT_MS":  fmt.Sprintf("%v", bus.TIMEOUT_MS),
	"POLL_BUDGET": fmt.Sprintf("%v", bus.POLL_BUDGET),
}

// Monitor state. Bus capture + display model + instrument profile.
type Monitor struct {
	Verbose      bool // If set, logs every change.
	*bus.Context      // Shared with the capture handler.
	Receiver     *bus.Receiver
	Display      *display.Display
	Profile      *profile.Profile

	ticks int
}

// NewMonitor creates a monitor capturing from port. line may be nil if
// there is no resync output; a nil prof uses the default profile.
func NewMonitor(clock bus.Clock, port bus.Port, line bus.Line, prof *profile.Profile) (mon *Monitor) {
	if prof == nil {
		prof = profile.Default()
	}

	ctx := bus.NewContext(clock, nil)
	mon = &Monitor{
		Context:  ctx,
		Receiver: bus.NewReceiver(ctx, port, line),
		Display:  display.NewDisplay(prof),
		Profile:  prof,
	}

	return
}

// Reset restores the power-on state of the capture and the display.
func (mon *Monitor) Reset() {
	mon.Context.Reset()
	mon.Display = display.NewDisplay(mon.Profile)
	mon.ticks = 0
}

// Ticks returns the number of render ticks since a reset.
func (mon *Monitor) Ticks() int {
	return mon.ticks
}

// Tick performs one render tick, and returns what changed.
func (mon *Monitor) Tick() (ch display.ChangeMask) {
	disp := mon.Display

	disp.Update(mon.Snapshot())
	disp.Combine()
	mon.ticks++

	ch = disp.Change
	if mon.Verbose && ch != 0 {
		log.Printf("tick %v: %v: %q %q %q", mon.ticks, ch, disp.TextCombined, disp.UnitsCombined, disp.LabelsCombined)
	}

	return
}

// Render writes the combined display as one line, with highlighted
// characters in brackets.
func (mon *Monitor) Render(w io.Writer) (err error) {
	return mon.render(w, false)
}

// RenderReverse is Render using ANSI reverse video.
func (mon *Monitor) RenderReverse(w io.Writer) (err error) {
	return mon.render(w, true)
}

func (mon *Monitor) render(w io.Writer, reverse bool) (err error) {
	disp := mon.Display

	on, off := "[", "]"
	if reverse {
		on, off = REVERSE_ON, REVERSE_OFF
	}

	var sb strings.Builder
	lit := false
	for n := range len(disp.TextCombined) {
		hl := n < len(disp.HighlightsCombined) && disp.HighlightsCombined[n]
		if hl != lit {
			if hl {
				sb.WriteString(on)
			} else {
				sb.WriteString(off)
			}
			lit = hl
		}
		sb.WriteByte(disp.TextCombined[n])
	}
	if lit {
		sb.WriteString(off)
	}

	if len(disp.UnitsCombined) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(disp.UnitsCombined)
	}
	if disp.Units[display.UNIT_GATE] {
		sb.WriteString(" *")
	}
	if len(disp.LabelsCombined) > 0 {
		sb.WriteString(" | ")
		sb.WriteString(disp.LabelsCombined)
	}

	_, err = translate.Fprintf(w, "%v\n", sb.String())
	return
}

func hexWords(words []bus.RawWord) string {
	var sb strings.Builder
	for n, w := range words {
		if n > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08x", uint32(w))
	}
	return sb.String()
}

// Defines returns an iterator over the diagnostics.
func (mon *Monitor) Defines() iter.Seq2[string, string] {
	stats := mon.Stats()
	disp := mon.Display

	unknown := make([]string, 0, len(disp.Decoder.Unknown()))
	for _, code := range disp.Decoder.Unknown() {
		unknown = append(unknown, fmt.Sprintf("%04x", code))
	}

	return internal.IterSeq2Concat(maps.All(_monitor_defines),
		internal.IterPairs(
			"PROFILE", mon.Profile.Name,
			"SYNC", mon.State().String(),
			"OK", fmt.Sprintf("%v", stats.Ok),
			"INCOMPLETE", fmt.Sprintf("%v", stats.Incomplete),
			"SYNC_LOSS", fmt.Sprintf("%v", stats.SyncLoss),
			"FRAMES", fmt.Sprintf("%v", stats.Frames),
			"LOOPS", fmt.Sprintf("%v", stats.Loops),
			"LAST", fmt.Sprintf("%08x", uint32(mon.Last())),
			"LAST_UPDATE", fmt.Sprintf("%v", mon.LastUpdate()),
			"NO_DISPLAY", fmt.Sprintf("%v", disp.NoDisplayData),
			"UNKNOWN_SEGMENTS", strings.Join(unknown, " "),
			"UNKNOWN_SEPARATOR", fmt.Sprintf("%v", disp.UnknownSeparator),
			"RECENT", hexWords(mon.Recent()),
			"LOST", hexWords(mon.LostWords()),
			"REJECTED", hexWords(mon.Rejected()),
		),
	)
}
