package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"log"
	"net"
	"sync"

	"github.com/marben/mandel"
)

// tileScheduler hands out render tiles to connected workers and
// assembles their results into the final image. Tiles still in process
// are handed out again once the backlog runs dry, so a stalled or lost
// worker never blocks completion; duplicate results carry identical
// pixels and are drawn over each other harmlessly.
type tileScheduler struct {
	width, height int
	vp            mandel.Viewport
	img           *image.Gray

	ctx       context.Context
	ctxCancel context.CancelFunc

	m              sync.Mutex
	workers        int
	totalTiles     int
	totalPixels    int
	finishedPixels int
	unstarted      map[image.Rectangle]struct{}
	inProcess      map[image.Rectangle]struct{}
}

func newTileScheduler(w, h int, vp mandel.Viewport) *tileScheduler {
	img := image.NewGray(image.Rect(0, 0, w, h))
	allTilesSlice := mandel.SplitTiles(img.Bounds(), mandel.TileSize, mandel.TileSize)
	allTiles := make(map[image.Rectangle]struct{}, len(allTilesSlice))
	for _, t := range allTilesSlice {
		allTiles[t] = struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &tileScheduler{
		width:       w,
		height:      h,
		vp:          vp,
		img:         img,
		unstarted:   allTiles,
		inProcess:   make(map[image.Rectangle]struct{}),
		totalTiles:  len(allTilesSlice),
		totalPixels: w * h,
		ctx:         ctx,
		ctxCancel:   cancel,
	}
}

func (s *tileScheduler) popTile() (tile image.Rectangle, found bool) {
	s.m.Lock()
	defer s.m.Unlock()

	// Get unstarted tile
	if len(s.unstarted) > 0 {
		for tile = range s.unstarted {
			break
		}
		delete(s.unstarted, tile)

		// Move popped tile to currently processed tiles
		s.inProcess[tile] = struct{}{}
		return tile, true
	}

	// If there is no unstarted tile, we work again on a started one
	if len(s.inProcess) > 0 {
		for tile = range s.inProcess {
			break
		}

		return tile, true
	}

	return image.Rectangle{}, false
}

// tileDone draws a finished tile into the image. pix holds one byte per
// pixel, row-major within tile.
func (s *tileScheduler) tileDone(tile image.Rectangle, pix []byte) error {
	if !tile.In(s.img.Bounds()) {
		return fmt.Errorf("tile %s outside image bounds %s", tile, s.img.Bounds())
	}
	if len(pix) != tile.Dx()*tile.Dy() {
		return fmt.Errorf("tile %s: got %d pixels, want %d", tile, len(pix), tile.Dx()*tile.Dy())
	}

	src := &image.Gray{Pix: pix, Stride: tile.Dx(), Rect: tile}

	s.m.Lock()
	defer s.m.Unlock()

	draw.Draw(s.img, tile, src, tile.Min, draw.Src)

	if _, found := s.inProcess[tile]; found {
		s.finishedPixels += tile.Dx() * tile.Dy()
		delete(s.inProcess, tile)
	}

	log.Printf("finished: %f", float32(s.finishedPixels)/float32(s.totalPixels))

	if len(s.unstarted) == 0 && len(s.inProcess) == 0 {
		s.ctxCancel()
	}
	return nil
}

// Done is closed once every tile has been drawn.
func (s *tileScheduler) Done() <-chan struct{} {
	return s.ctx.Done()
}

// snapshot copies the image as rendered so far. Workers may still be
// drawing duplicate tiles, so readers never touch img directly.
func (s *tileScheduler) snapshot() *image.Gray {
	s.m.Lock()
	defer s.m.Unlock()

	cp := image.NewGray(s.img.Rect)
	copy(cp.Pix, s.img.Pix)
	return cp
}

type renderStatus struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	TotalTiles  int `json:"totalTiles"`
	DoneTiles   int `json:"doneTiles"`
	DonePixels  int `json:"donePixels"`
	TotalPixels int `json:"totalPixels"`
	Workers     int `json:"workers"`
}

func (s *tileScheduler) status() renderStatus {
	s.m.Lock()
	defer s.m.Unlock()

	return renderStatus{
		Width:       s.width,
		Height:      s.height,
		TotalTiles:  s.totalTiles,
		DoneTiles:   s.totalTiles - len(s.unstarted) - len(s.inProcess),
		DonePixels:  s.finishedPixels,
		TotalPixels: s.totalPixels,
		Workers:     s.workers,
	}
}

func (s *tileScheduler) addWorker() {
	s.m.Lock()
	s.workers++
	w := s.workers
	s.m.Unlock()

	log.Printf("workers: %d", w)
}

func (s *tileScheduler) removeWorker() {
	s.m.Lock()
	s.workers--
	w := s.workers
	s.m.Unlock()

	log.Printf("workers: %d", w)
}

// serveWorker runs the tile protocol on one worker connection: hello and
// job are exchanged once, then the worker pulls tiles with next and
// returns pixels with result until no work remains.
// Can be called from multiple goroutines in parallel.
func (s *tileScheduler) serveWorker(conn net.Conn) error {
	defer conn.Close()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	var hello mandel.Message
	if err := dec.Decode(&hello); err != nil {
		return fmt.Errorf("decode hello: %w", err)
	}
	if hello.Type != mandel.MsgHello {
		return fmt.Errorf("unexpected message %q, want %q", hello.Type, mandel.MsgHello)
	}
	log.Printf("hello from %q", hello.Name)

	if err := enc.Encode(mandel.JobMessage(s.width, s.height, s.vp)); err != nil {
		return fmt.Errorf("send job: %w", err)
	}

	s.addWorker()
	defer s.removeWorker()

	for {
		var msg mandel.Message
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("decode: %w", err)
		}

		switch msg.Type {
		case mandel.MsgNext:
			tile, found := s.popTile()
			if !found {
				return enc.Encode(mandel.Message{Type: mandel.MsgDone})
			}
			if err := enc.Encode(mandel.Message{Type: mandel.MsgTile, Tile: tile}); err != nil {
				return fmt.Errorf("send tile: %w", err)
			}

		case mandel.MsgResult:
			if err := s.tileDone(msg.Tile, msg.Pix); err != nil {
				return fmt.Errorf("bad result: %w", err)
			}

		default:
			return fmt.Errorf("unexpected message %q", msg.Type)
		}
	}
}

// serveListener accepts worker connections until the listener closes.
func serveListener(s *tileScheduler, l net.Listener) {
	for {
		conn, err := l.Accept()
		if err != nil {
			log.Printf("accept on %s: %v", l.Addr(), err)
			return
		}
		log.Printf("got connection from: %s", conn.RemoteAddr())

		go func() {
			if err := s.serveWorker(conn); err != nil {
				log.Printf("worker %s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}
