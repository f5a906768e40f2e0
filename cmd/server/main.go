// Command server coordinates a distributed Mandelbrot render.
//
// The server renders nothing itself: it splits the image into tiles,
// hands them to workers connecting over tcp or websocket, assembles the
// returned pixels and writes the output file once every tile is done.
// While the render runs, the http address serves a monitor page with the
// image as rendered so far.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marben/mandel"
)

var (
	tcpAddr  = flag.String("tcp", ":8081", "tcp listen address for workers")
	httpAddr = flag.String("http", ":8080", "http listen address (monitor page and websocket workers)")
	region   = flag.String("region", "", "render a named landmark instead of explicit corners (one of "+strings.Join(mandel.RegionNames(), ", ")+")")
)

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] FILE PIXELS UPPERLEFT LOWERRIGHT\n", prog)
	fmt.Fprintf(os.Stderr, "Example: %s mandel.png 1920x1080 -1.20,0.35 -1.0,0.20\n", prog)
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

	sched := newTileScheduler(width, height, vp)

	// TCP
	tcpListener, err := net.Listen("tcp", *tcpAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	log.Printf("tcp listening on: %s", *tcpAddr)

	// WEBSOCKET
	wsListener, httpServer := webServer(context.Background(), *httpAddr, sched)

	// httpServer provides the monitor page along with the websocket endpoint
	go func() {
		if err := httpServer.ListenAndServe(); err != nil {
			log.Fatalf("httpServer: %v", err)
		}
	}()

	// the scheduler serves multiple listeners. In this case both tcp and websocket
	go serveListener(sched, tcpListener)
	go serveListener(sched, wsListener)

	start := time.Now()
	log.Printf("waiting for tcp and websocket workers")
	<-sched.Done()

	if err := mandel.WriteImageFile(file, sched.snapshot()); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d) in %s", file, width, height, time.Since(start).Round(time.Millisecond))

	return nil
}
