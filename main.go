package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/aryanA101a/lc3-vm-go/terminal"
	"github.com/aryanA101a/lc3-vm-go/translate"
	"github.com/aryanA101a/lc3-vm-go/vm"
)

func main() {
	var verbose bool
	var logFile string

	flag.BoolVar(&verbose, "v", false, "Trace every instruction")
	flag.StringVar(&logFile, "log", "", "Write logs to this file instead of stderr")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, translate.From("usage: %v [-v] [-log file] image-file1 ...", os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	tty := terminal.New(os.Stdin, log)
	machine := vm.NewVM(
		vm.WithKeyboard(tty),
		vm.WithOutput(os.Stdout),
		vm.WithLogger(log),
	)

	for _, path := range flag.Args() {
		if err := machine.LoadImageFile(path); err != nil {
			log.Fatal(err)
		}
	}

	os.Exit(run(machine, tty, log))
}

// run executes the machine with the terminal in raw mode and returns the
// process exit status.
func run(machine *vm.VM, tty *terminal.Terminal, log *logrus.Logger) int {
	if err := tty.EnableRawMode(); err != nil {
		log.Error(err)
		return 1
	}
	defer func() {
		if err := tty.Restore(); err != nil {
			log.Error(err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// a pending GETC blocks Run, so restore the terminal from here
	go func() {
		<-sigs
		tty.Restore()
		os.Exit(130)
	}()

	if err := machine.Run(context.Background()); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}
