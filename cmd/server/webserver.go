package main

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// webServer creates the http server with the render monitor page, the
// progressively updated image and the status feed.
// It also initializes the websocket endpoint and returns a net.Listener
// accepting websocket worker connections.
func webServer(ctx context.Context, addr string, sched *tileScheduler) (net.Listener, *http.Server) {
	l := NewWSListener(ctx, addr+"/ws")
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(l))
	mux.HandleFunc("/image.png", sched.handleImage)
	mux.HandleFunc("/status", sched.handleStatus)
	mux.HandleFunc("/", handleIndex)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost%s", addr)
	return l, srv
}

// websocketHandler handles the http ws endpoint
// if websocket is succesfully initialized it is passed to WebsocketListener so it can be accepted
func websocketHandler(l *WebsocketListener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}

		l.ch <- c
	}
}

// handleStatus reports render progress as JSON.
func (s *tileScheduler) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.status()); err != nil {
		log.Printf("status: %v", err)
	}
}

// handleImage serves the image as rendered so far.
func (s *tileScheduler) handleImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, s.snapshot()); err != nil {
		log.Printf("image: %v", err)
	}
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>mandel</title></head>
<body>
<h1>Mandelbrot render</h1>
<p>workers: <span id="workersRunning">0</span>,
tiles: <span id="tilesDone">0</span>/<span id="tilesTotal">0</span></p>
<img id="preview" src="/image.png" alt="render in progress">
<script>
async function refresh() {
	const resp = await fetch("/status");
	const st = await resp.json();
	document.getElementById("workersRunning").textContent = st.workers;
	document.getElementById("tilesDone").textContent = st.doneTiles;
	document.getElementById("tilesTotal").textContent = st.totalTiles;
	document.getElementById("preview").src = "/image.png?t=" + Date.now();
}
setInterval(refresh, 1000);
</script>
</body>
</html>
`

// WebsocketListener implements net.Listener
// it's a wrapper around websocket.Conn
type WebsocketListener struct {
	ch     chan *websocket.Conn
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func NewWSListener(ctx context.Context, addr string) *WebsocketListener {
	ctx, cancel := context.WithCancel(ctx)
	return &WebsocketListener{
		ch:     make(chan *websocket.Conn),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

func (l *WebsocketListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		return nil, context.Cause(l.ctx)
	case <-l.done:
		return nil, net.ErrClosed
	}
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

func (l *WebsocketListener) Close() error {
	l.cancel()
	return nil
}

// wsAddrs implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
