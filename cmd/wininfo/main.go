// Command wininfo prints properties of the registered window shapes.
//
// Usage:
//
//	wininfo [flags] [shape-name ...]
//
// Without arguments it prints info for all registered shapes.
//
// Examples:
//
//	wininfo blackman
//	wininfo -size 4096 hann hamming
//	wininfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-convolution/dsp/window"
)

func main() {
	size := flag.Int("size", 1024, "window length in samples")
	list := flag.Bool("list", false, "list registered shape names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wininfo [flags] [shape-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints coherent gain and equivalent noise bandwidth of window shapes.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints info for all registered shapes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		for _, name := range window.Names() {
			fmt.Println(name)
		}
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		names = window.Names()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Shape\tSize\tCoherent Gain\tENBW [bins]\n")
	fmt.Fprintf(tw, "-----\t----\t-------------\t-----------\n")

	exitCode := 0
	for _, name := range names {
		shape, ok := window.Lookup(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown shape %q (use -list to see available)\n", name)
			exitCode = 1
			continue
		}

		a := window.Analyze(shape(*size))
		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\n", name, *size, a.CoherentGain, a.ENBW)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		exitCode = 1
	}
	os.Exit(exitCode)
}
