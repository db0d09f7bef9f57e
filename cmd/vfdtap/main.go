// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/vfdtap/bus"
	"github.com/ezrec/vfdtap/display"
	"github.com/ezrec/vfdtap/hw"
	"github.com/ezrec/vfdtap/monitor"
	"github.com/ezrec/vfdtap/profile"
	"github.com/ezrec/vfdtap/trace"
)

const SHOWN = display.CHANGE_TEXT_COMB | display.CHANGE_UNITS_COMB | display.CHANGE_LABELS_COMB | display.CHANGE_GATE

func main() {
	var script string
	var capture string
	var write string
	var prof string
	var chip string
	var enable int
	var resync string
	var serial string
	var baud uint
	var step uint
	var interval time.Duration
	var verbose bool

	flag.StringVar(&script, "t", "", ".vfd trace script to replay")
	flag.StringVar(&capture, "c", "", "Binary capture to replay")
	flag.StringVar(&write, "w", "", "Write the replayed words as a binary capture")
	flag.StringVar(&prof, "p", profile.DEFAULT, "Instrument profile name or .yaml file")
	flag.StringVar(&chip, "chip", "gpiochip0", "GPIO chip of the enable line")
	flag.IntVar(&enable, "enable", -1, "GPIO offset of the enable line")
	flag.StringVar(&resync, "resync", "", "GPIO name of the resync output")
	flag.StringVar(&serial, "serial", "/dev/ttyUSB0", "Serial bridge carrying the bus bytes")
	flag.UintVar(&baud, "baud", 921600, "Serial bridge baud rate")
	flag.UintVar(&step, "step", 0, "Milliseconds per scan when replaying a capture")
	flag.DurationVar(&interval, "interval", monitor.TICK_MS*time.Millisecond, "Render interval on hardware")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	pr, err := profile.Open(prof)
	if err != nil {
		log.Fatalf("%v: %v", prof, err)
	}

	render := func(mon *monitor.Monitor) {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			err = mon.RenderReverse(os.Stdout)
		} else {
			err = mon.Render(os.Stdout)
		}
		if err != nil {
			log.Fatal(err)
		}
	}

	var tr *trace.Trace
	switch {
	case len(script) != 0:
		inf, err := os.Open(script)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		defer inf.Close()

		asm := &trace.Assembler{Verbose: verbose}
		tr, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	case len(capture) != 0:
		var inf io.ReadCloser = os.Stdin
		if capture != "-" {
			inf, err = os.Open(capture)
			if err != nil {
				log.Fatalf("%v: %v", capture, err)
			}
		}
		defer inf.Close()

		tr, err = trace.ReadCapture(inf, uint32(step))
		if err != nil {
			log.Fatalf("%v: %v", capture, err)
		}
	case enable >= 0:
		attach(pr, chip, enable, resync, serial, baud, interval, verbose, render)
		return
	default:
		log.Fatalf("%v: one of -t, -c or -enable is required", os.Args[0])
	}

	if len(write) != 0 {
		ouf, err := os.Create(write)
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
		err = trace.WriteCapture(ouf, tr.CaptureWords())
		if err == nil {
			err = ouf.Close()
		}
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
	}

	clock := &bus.ManualClock{}
	fifo := &bus.Fifo{Capacity: bus.WORD_BYTES}
	mon := monitor.NewMonitor(clock, fifo, nil, pr)
	mon.Verbose = verbose

	pl := &trace.Player{
		Verbose: verbose,
		Trace:   tr,
		Fifo:    fifo,
		Clock:   clock,
		Enable:  mon.Receiver.OnEnable,
	}
	pl.Run(func() {
		if mon.Tick().Has(SHOWN) {
			render(mon)
		}
	})

	if verbose {
		dumpDefines(mon)
	}
}

// attach captures from hardware until interrupted or the bridge goes away.
func attach(pr *profile.Profile, chip string, enable int, resync string, serial string, baud uint, interval time.Duration, verbose bool, render func(*monitor.Monitor)) {
	err := hw.Init()
	if err != nil {
		log.Fatal(err)
	}

	var line bus.Line
	if len(resync) != 0 {
		line, err = hw.ResyncPin(resync)
		if err != nil {
			log.Fatal(err)
		}
	}

	port, err := hw.OpenSerial(serial, baud)
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()

	mon := monitor.NewMonitor(bus.NewSystemClock(), port, line, pr)
	mon.Verbose = verbose

	trigger := &hw.EnableTrigger{}
	err = trigger.Open(chip, enable, mon.Receiver.OnEnable)
	if err != nil {
		log.Fatal(err)
	}
	defer trigger.Close()

	stopped := make(chan error, 1)
	go func() {
		stopped <- port.Wait()
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if mon.Tick().Has(SHOWN) {
				render(mon)
			}
		case err = <-stopped:
			log.Printf("%v: %v", serial, err)
			if verbose {
				dumpDefines(mon)
			}
			return
		case <-interrupt:
			if verbose {
				log.Printf("enable: %v edges, %v missed; serial: %v overruns", trigger.Edges(), trigger.Missed(), port.Overruns())
				dumpDefines(mon)
			}
			return
		}
	}
}

func dumpDefines(mon *monitor.Monitor) {
	for key, value := range mon.Defines() {
		log.Printf("%v: %v", key, value)
	}
}
