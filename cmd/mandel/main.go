// Command mandel renders an image of the Mandelbrot set on the local
// machine.
//
//	mandel mandel.png 1000x750 -1.20,0.35 -1.0,0.20
//
// The two corner arguments frame the rendered region of the complex
// plane; -region picks a named landmark instead. The output format
// follows the file extension.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marben/mandel"
	"github.com/marben/mandel/render"
)

var (
	workers = flag.Int("workers", 0, "number of render goroutines (0 = all CPUs)")
	region  = flag.String("region", "", "render a named landmark instead of explicit corners (one of "+strings.Join(mandel.RegionNames(), ", ")+")")
)

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] FILE PIXELS UPPERLEFT LOWERRIGHT\n", prog)
	fmt.Fprintf(os.Stderr, "Example: %s mandel.png 1000x750 -1.20,0.35 -1.0,0.20\n", prog)
	fmt.Fprintf(os.Stderr, "\nFILE's extension selects the format: .png, .bmp, .tiff or .ppm.\n")
	fmt.Fprintf(os.Stderr, "With -region NAME the corner arguments are dropped:\n")
	fmt.Fprintf(os.Stderr, "Example: %s -region seahorse mandel.png 1000x750\n", prog)
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()

	var file, pixels string
	var vp mandel.Viewport

	switch {
	case *region != "" && len(args) == 2:
		v, ok := mandel.LookupRegion(*region)
		if !ok {
			return fmt.Errorf("unknown region %q (want one of %s)", *region, strings.Join(mandel.RegionNames(), ", "))
		}
		vp = v
		file, pixels = args[0], args[1]

	case *region == "" && len(args) == 4:
		v, err := mandel.ParseViewport(args[2], args[3])
		if err != nil {
			return err
		}
		vp = v
		file, pixels = args[0], args[1]

	default:
		usage()
		return fmt.Errorf("expect FILE PIXELS UPPERLEFT LOWERRIGHT, or -region NAME with FILE PIXELS")
	}

	width, height, err := mandel.ParseSize(pixels)
	if err != nil {
		return err
	}

	start := time.Now()
	img := render.Image(width, height, vp, *workers)
	if err := mandel.WriteImageFile(file, img); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d) in %s", file, width, height, time.Since(start).Round(time.Millisecond))

	return nil
}
