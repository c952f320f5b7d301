// cmd/xformgen/main.go: prints the renderer's model, view and projection
// matrices.
//
// Usage:
//
//	go run ./cmd/xformgen [-format text|latex|json] [-all] [-size n]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/njchilds90/xformgen"
)

func main() {
	format := flag.String("format", "text", "output format: text, latex or json")
	all := flag.Bool("all", false, "also print scamat, posmat and rotmat")
	size := flag.Int("size", 4, "homogeneous matrix size")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: xformgen [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Derive the 2D model, view and projection matrices symbolically.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("xformgen: ")

	f, err := xformgen.ParseFormat(*format)
	if err != nil {
		log.Print(err)
		flag.Usage()
		os.Exit(2)
	}
	p := xformgen.DefaultParams()
	p.Size = *size
	if err := run(os.Stdout, p, f, *all); err != nil {
		switch {
		case errors.Is(err, xformgen.ErrNonAffine):
			log.Printf("rotation is not affine in its basis: %v", err)
		case errors.Is(err, xformgen.ErrTargetTooSmall):
			log.Printf("homogeneous size too small: %v", err)
		default:
			log.Print(err)
		}
		os.Exit(1)
	}
}

func run(w io.Writer, p xformgen.Params, f xformgen.Format, all bool) error {
	ts, err := xformgen.BuildTransforms(p)
	if err != nil {
		return err
	}
	ms := ts.Named()
	if all {
		ms = ts.All()
	}
	return xformgen.Report(w, ms, f)
}
