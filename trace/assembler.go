// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package trace

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/vfdtap/bus"
	"github.com/ezrec/vfdtap/display"
	"github.com/ezrec/vfdtap/segment"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"GATE_COUNT":     fmt.Sprintf("%d", bus.GATE_COUNT),
	"RESYNC_GATE":    fmt.Sprintf("%d", bus.RESYNC_GATE),
	"TIMEOUT_MS":     fmt.Sprintf("%d", bus.TIMEOUT_MS),
	"LABEL_MASK":     fmt.Sprintf("%#x", bus.LABEL_MASK),
	"HIGHLIGHT_NONE": fmt.Sprintf("%#x", uint32(bus.HIGHLIGHT_NONE)),
}

// sysBuiltin are functions usable inside $(...).
var sysBuiltin = starlark.StringDict{
	// gate(n) is the driven gate bit of position n.
	"gate": starlark.NewBuiltin("gate", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n)
		if err != nil {
			return nil, err
		}
		if n < 0 || n >= bus.GATE_COUNT {
			return nil, ErrPosition
		}
		return starlark.MakeInt64(int64(1) << (20 + n)), nil
	}),
	// seg(c) is the segment pattern of character c.
	"seg": starlark.NewBuiltin("seg", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var c int
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &c)
		if err != nil {
			return nil, err
		}
		code, ok := segment.Encode(byte(c))
		if !ok || c < 0 || c > 0xff {
			return nil, ErrFrameChar(byte(c))
		}
		return starlark.MakeInt(int(code)), nil
	}),
}

// Assembler is a single pass assembler for bus trace scripts.
//
// A script holds one directive per line; ';' starts a comment outside of
// quotes. Words may be equates, numbers, 'c' character literals or
// $(expr) expressions.
//
//	.equ NAME VALUE      define an equate
//	word V...            one complete transaction per value
//	short N V            a transaction cut off after N bytes
//	idle MS              advance the clock, then render
//	render               ask the consumer to render
//	label POS...         light labels in the next frame
//	unit NAME...         light units in the next frame
//	highlight POS...     highlight positions in the next frame
//	frame "TEXT"         one full scan showing TEXT, then render
type Assembler struct {
	Verbose bool              // If set, verbosely logs the assembler actions.
	Equate  map[string]string // Map of equates.

	predefine map[string]string
	trace     *Trace
	frame     Frame
	lineno    int
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	invert := false
	if len(word) > 0 && word[0] == '~' {
		invert = true
		word = word[1:]
	}
	v64, err := strconv.ParseInt(word, 0, 33)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}
	if v64 < 0 {
		value = uint32(0xffffffff + (v64 + 1))
	} else {
		value = uint32(v64)
	}

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := maps.Clone(sysBuiltin)
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Non-integer equates are left out.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(int64(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// stripComment removes a ';' comment that is not inside double quotes.
func stripComment(text string) string {
	quoted := false
	for n := range len(text) {
		switch text[n] {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				return text[:n]
			}
		}
	}
	return text
}

// parseLine expands a line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// frame "TEXT" is taken verbatim.
	if rest, ok := strings.CutPrefix(line, "frame"); ok && (len(rest) == 0 || rest[0] == ' ' || rest[0] == '\t') {
		rest = strings.TrimSpace(rest)
		if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
			err = ErrFrameQuote
			return
		}
		words = []string{"frame", rest[1 : len(rest)-1]}
		return
	}

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Fields(line), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

func (asm *Assembler) emit(ev Event) {
	ev.LineNo = asm.lineno
	asm.trace.Events = append(asm.trace.Events, ev)
}

func (asm *Assembler) positions(args []string) (pos []int, err error) {
	if len(args) == 0 {
		err = ErrArgCount
		return
	}
	for _, arg := range args {
		var value uint32
		value, err = asm.valueOf(arg)
		if err != nil {
			return
		}
		if value >= bus.GATE_COUNT {
			err = ErrPosition
			return
		}
		pos = append(pos, int(value))
	}
	return
}

// parseWords turns one expanded line into events.
func (asm *Assembler) parseWords(words []string) (err error) {
	if len(words) == 0 {
		return
	}

	op, args := words[0], words[1:]
	switch op {
	case "word":
		if len(args) == 0 {
			err = ErrArgCount
			return
		}
		for _, arg := range args {
			var value uint32
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			data := bus.RawWord(value).Bytes()
			asm.emit(Event{Kind: EVENT_WORD, Data: data[:]})
		}
	case "short":
		if len(args) != 2 {
			err = ErrArgCount
			return
		}
		var count, value uint32
		count, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if count >= bus.WORD_BYTES {
			err = ErrShortLength
			return
		}
		value, err = asm.valueOf(args[1])
		if err != nil {
			return
		}
		data := bus.RawWord(value).Bytes()
		asm.emit(Event{Kind: EVENT_SHORT, Data: data[:count]})
	case "idle":
		if len(args) != 1 {
			err = ErrArgCount
			return
		}
		var ms uint32
		ms, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		asm.emit(Event{Kind: EVENT_IDLE, Ms: ms})
		asm.emit(Event{Kind: EVENT_RENDER})
	case "render":
		if len(args) != 0 {
			err = ErrArgCount
			return
		}
		asm.emit(Event{Kind: EVENT_RENDER})
	case "label":
		var pos []int
		pos, err = asm.positions(args)
		if err != nil {
			return
		}
		for _, p := range pos {
			asm.frame.Labels[p] = true
		}
	case "highlight":
		var pos []int
		pos, err = asm.positions(args)
		if err != nil {
			return
		}
		asm.frame.Highlights = append(asm.frame.Highlights, pos...)
		if len(asm.frame.Highlights) > MAX_HIGHLIGHTS {
			err = ErrHighlightFull
			return
		}
	case "unit":
		if len(args) == 0 {
			err = ErrArgCount
			return
		}
		for _, arg := range args {
			found := false
			for n := range display.UNIT_COUNT {
				if display.Unit(n).String() == arg {
					asm.frame.Units[n] = true
					found = true
				}
			}
			if !found {
				err = ErrUnit
				return
			}
		}
	case "frame":
		asm.frame.Text = args[0]
		var scan [bus.SLOT_COUNT]bus.RawWord
		scan, err = asm.frame.Words()
		if err != nil {
			return
		}
		for _, w := range scan {
			data := w.Bytes()
			asm.emit(Event{Kind: EVENT_WORD, Data: data[:]})
		}
		asm.emit(Event{Kind: EVENT_RENDER})
		asm.frame = Frame{}
	default:
		err = ErrDirectiveUnknown
	}

	return
}

// Parse parses a script into a Trace.
func (asm *Assembler) Parse(input io.Reader) (tr *Trace, err error) {
	scanner := bufio.NewScanner(input)

	var line string

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: asm.lineno, Line: line, Err: err}
			tr = nil
		}
	}()

	asm.trace = &Trace{}
	asm.frame = Frame{}
	asm.lineno = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		asm.lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", asm.lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))

		var words []string
		words, err = asm.parseLine(line, asm.lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	tr = asm.trace
	return
}
