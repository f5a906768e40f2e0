// Command worker renders tiles for a server.
//
// A worker connects over tcp or websocket, receives the job description
// and then pulls tiles one by one, sending back the rendered pixels.
// -procs opens that many connections, each rendering one tile at a time,
// so one machine can saturate all its CPUs.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"net"
	"net/url"
	"os"
	"runtime"
	"sync"

	"github.com/coder/websocket"

	"github.com/marben/mandel"
	"github.com/marben/mandel/render"
)

var (
	connect = flag.String("connect", "tcp://localhost:8081", "server address: tcp://host:port or ws://host:port/ws")
	procs   = flag.Int("procs", 0, "parallel connections to the server (0 = all CPUs)")
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	flag.Parse()

	n := *procs
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	name, err := os.Hostname()
	if err != nil {
		name = "worker"
	}

	ctx := context.Background()

	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = workSession(ctx, *connect, fmt.Sprintf("%s/%d", name, i))
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// workSession runs one connection worth of work: hello, job, then the
// next/tile/result loop until the server says done.
func workSession(ctx context.Context, target, name string) error {
	conn, err := dial(ctx, target)
	if err != nil {
		return err
	}
	defer conn.Close()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	if err := enc.Encode(mandel.Message{Type: mandel.MsgHello, Name: name, Procs: 1}); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}

	var job mandel.Message
	if err := dec.Decode(&job); err != nil {
		return fmt.Errorf("decode job: %w", err)
	}
	if job.Type != mandel.MsgJob {
		return fmt.Errorf("unexpected message %q, want %q", job.Type, mandel.MsgJob)
	}
	vp := job.Viewport()
	log.Printf("job: %dx%d", job.Width, job.Height)

	for {
		if err := enc.Encode(mandel.Message{Type: mandel.MsgNext}); err != nil {
			return fmt.Errorf("request tile: %w", err)
		}

		var msg mandel.Message
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("decode: %w", err)
		}

		switch msg.Type {
		case mandel.MsgDone:
			return nil

		case mandel.MsgTile:
			log.Printf("rendering tile: %s", msg.Tile)
			img := image.NewGray(msg.Tile)
			render.Tile(img, msg.Tile, vp, job.Width, job.Height)
			if err := enc.Encode(mandel.Message{Type: mandel.MsgResult, Tile: msg.Tile, Pix: img.Pix}); err != nil {
				return fmt.Errorf("send result: %w", err)
			}

		default:
			return fmt.Errorf("unexpected message %q", msg.Type)
		}
	}
}

// dial connects to the server, wrapping websocket connections so both
// transports hand back a plain net.Conn.
func dial(ctx context.Context, target string) (net.Conn, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", target, err)
	}

	switch u.Scheme {
	case "tcp":
		conn, err := net.Dial("tcp", u.Host)
		if err != nil {
			return nil, fmt.Errorf("net.Dial: %w", err)
		}
		return conn, nil

	case "ws", "wss":
		c, _, err := websocket.Dial(ctx, target, nil)
		if err != nil {
			return nil, fmt.Errorf("websocket.Dial: %w", err)
		}
		return websocket.NetConn(ctx, c, websocket.MessageBinary), nil

	default:
		return nil, fmt.Errorf("unsupported scheme %q (want tcp, ws or wss)", u.Scheme)
	}
}
