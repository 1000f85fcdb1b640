package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/dustinbowers/chip8vm/chip8"
	"github.com/dustinbowers/chip8vm/internal/beep"
	"github.com/dustinbowers/chip8vm/internal/chiperr"
	"github.com/dustinbowers/chip8vm/internal/display"
	"github.com/dustinbowers/chip8vm/internal/driver"
	"github.com/dustinbowers/chip8vm/internal/keypad"
	"github.com/dustinbowers/chip8vm/internal/randsrc"
	"github.com/dustinbowers/chip8vm/internal/romfile"
	"github.com/dustinbowers/chip8vm/internal/termio"
)

var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "load a ROM and run it in the terminal",
	Args:  cobra.ExactArgs(1),
	Run:   runChip8vm,
}

func runChip8vm(cmd *cobra.Command, args []string) {
	romPath := args[0]

	rom, err := romfile.Load(romPath)
	if err != nil {
		exitOn(err)
	}

	kp := keypad.New()
	m := chip8.New(kp, randsrc.NewMath(time.Now().UnixNano()))
	if err := m.Init(rom); err != nil {
		exitOn(err)
	}

	if err := termio.Start(); err != nil {
		exitOn(chiperr.Wrap(chiperr.TerminalError, err))
	}

	var quit atomic.Bool
	var wg sync.WaitGroup

	reader := termio.NewReader(kp, &quit)
	wg.Add(1)
	go func() {
		defer wg.Done()
		reader.Run()
	}()

	// Ctrl+C during a blocked terminal read must still terminate cleanly:
	// wake the reader's PollEvent so it can observe quit on its next pass.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	go func() {
		<-signals
		quit.Store(true)
		termio.Interrupt()
	}()

	d := driver.New(m, kp, &quit)
	d.Display = display.TermboxSink{}
	d.Beep = beep.TermboxBellSink{}
	d.Log = log.New(os.Stderr, "", log.LstdFlags)

	runErr := d.Run()

	quit.Store(true)
	termio.Interrupt()
	wg.Wait()

	// os.Exit inside exitOn bypasses deferred calls, so the terminal must be
	// restored here explicitly before we ever reach it — teardown must run
	// even on a fatal decoder error.
	termio.Stop()

	exitOn(runErr)
}

// exitOn maps a taxonomy error to its process exit code and terminates.
// A nil error is a clean exit with status 0.
func exitOn(err error) {
	if err == nil {
		return
	}
	if code, ok := chiperr.CodeOf(err); ok {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code.ExitStatus())
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
