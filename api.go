package mandel

import "image"

// Message types exchanged between the coordinator and its workers. The
// protocol is worker driven: after the hello/job handshake the worker
// asks for tiles with "next" and returns pixels with "result" until the
// coordinator answers "done".
const (
	MsgHello  = "hello"  // worker -> coordinator: introduce itself
	MsgJob    = "job"    // coordinator -> worker: image size and viewport
	MsgNext   = "next"   // worker -> coordinator: request a tile
	MsgTile   = "tile"   // coordinator -> worker: tile to render
	MsgResult = "result" // worker -> coordinator: rendered tile pixels
	MsgDone   = "done"   // coordinator -> worker: no tiles left, disconnect
)

// Message is the single frame type of the worker protocol, sent as one
// JSON object per line in both directions. Only the fields relevant to
// the given Type are set; Pix carries one byte per pixel in row-major
// order within Tile.
type Message struct {
	Type string `json:"type"`

	// hello
	Name  string `json:"name,omitempty"`
	Procs int    `json:"procs,omitempty"`

	// job
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	ULRe   float64 `json:"ulRe,omitempty"`
	ULIm   float64 `json:"ulIm,omitempty"`
	LRRe   float64 `json:"lrRe,omitempty"`
	LRIm   float64 `json:"lrIm,omitempty"`

	// tile, result
	Tile image.Rectangle `json:"tile"`
	Pix  []byte          `json:"pix,omitempty"`
}

// JobMessage builds the job frame describing the render to a worker.
func JobMessage(width, height int, vp Viewport) Message {
	return Message{
		Type:   MsgJob,
		Width:  width,
		Height: height,
		ULRe:   real(vp.UpperLeft),
		ULIm:   imag(vp.UpperLeft),
		LRRe:   real(vp.LowerRight),
		LRIm:   imag(vp.LowerRight),
	}
}

// Viewport reassembles the viewport carried by a job frame.
func (m Message) Viewport() Viewport {
	return Viewport{
		UpperLeft:  complex(m.ULRe, m.ULIm),
		LowerRight: complex(m.LRRe, m.LRIm),
	}
}
