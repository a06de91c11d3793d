package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ritprem/ritprem/resource"
	"github.com/ritprem/ritprem/shared"
	"github.com/ritprem/ritprem/wafer"
)

func main() {
	defaults := wafer.DefaultOptions()
	var (
		length      = flag.Float64("length", defaults.Length, "Wafer depth in µm")
		step        = flag.Float64("step", defaults.Step, "Grid spacing in µm")
		symbol      = flag.String("element", defaults.Element, "Initial dopant symbol")
		dose        = flag.String("dose", "2e15", "Initial density in cm^-3 (integer or BASEeEXP)")
		display     = flag.Bool("display", false, "Print every grid point")
		plot        = flag.Bool("plot", false, "Plot the depth profile of the initial dopant")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log handle lifecycle events to stderr")
	)
	flag.Parse()

	if *verbose {
		if err := installLogger(&defaults); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	density, err := parseDose(*dose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: ritprem [-length 6.0] [-step 0.01] [-element B] [-dose 2e15] [-display] [-plot]")
		fmt.Fprintln(os.Stderr, "       ritprem -i  (interactive mode)")
		os.Exit(1)
	}

	opts := defaults
	opts.Length = *length
	opts.Step = *step
	opts.Element = *symbol
	opts.Density = density

	if *interactive {
		if err := runInteractive(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(opts, *display, *plot); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts wafer.Options, display, plot bool) error {
	fmt.Println("launching ritprem")

	w, err := wafer.New(opts)
	if err != nil {
		return fmt.Errorf("create wafer: %w", err)
	}
	defer w.Close()

	fmt.Printf("Wafer: %.3f µm, step %.3f µm\n", opts.Length, opts.Step)
	fmt.Printf("Grid points: %d\n", w.Len())
	fmt.Printf("Dopant: %s at %s cm^-3\n", opts.Element, opts.Density)
	fmt.Printf("Distinct profiles: %d\n", w.DistinctProfiles())

	if display {
		if err := w.Display(os.Stdout); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}

	if plot {
		fmt.Print(renderPlot(w.Profile(opts.Element), opts.Element, terminalWidth()))
	}
	return nil
}

// Solid silicon holds about 5·10²² atoms per cm³; anything far beyond
// that is a typo.
const maxDoseExponent = 30

// parseDose accepts a plain integer ("2000000000000000") or the BASEeEXP
// shorthand ("2e15").
func parseDose(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if base, exp, ok := strings.Cut(strings.ToLower(s), "e"); ok {
		b, err := strconv.ParseInt(base, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("dose base %q: %w", base, err)
		}
		e, err := strconv.Atoi(exp)
		if err != nil || e < 0 || e > maxDoseExponent {
			return nil, fmt.Errorf("dose exponent %q must be an integer from 0 to %d", exp, maxDoseExponent)
		}
		return wafer.Dose(b, e), nil
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("dose %q is not an integer", s)
	}
	return v, nil
}

// installLogger routes package logs to a development logger and reports
// resource lifecycle events of the wafer built from opts.
func installLogger(opts *wafer.Options) error {
	l, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	shared.SetLogger(l)
	resource.SetLogger(l)
	wafer.SetLogger(l)

	table := resource.NewTable()
	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
		l.Debug("resource event",
			zap.Stringer("type", e.Type),
			zap.Uint32("handle", uint32(e.Handle)),
			zap.Uint32("type_id", e.TypeID))
	}))
	opts.Resources = table
	return nil
}
