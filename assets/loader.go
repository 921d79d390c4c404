package assets

import (
	"image"
	"log/slog"
	"sync"

	"github.com/pthm-cable/tileworld/tiles"
)

// Request asks for one sprite to be decoded.
type Request struct {
	Type    string
	Variant tiles.Variant
	Ref     string
}

// Result is a finished decode. Err is set when the image could not be loaded.
type Result struct {
	Request
	Image image.Image
	Err   error
}

// Opener decodes the image behind a reference.
type Opener interface {
	Open(ref string) (image.Image, error)
}

// Loader decodes images on worker goroutines. Results are collected with Poll
// on the frame thread. In-flight decodes are never cancelled.
type Loader struct {
	opener     Opener
	numWorkers int

	workChan chan Request
	stopChan chan struct{}
	wg       sync.WaitGroup
	senders  sync.WaitGroup
	running  bool

	mu      sync.Mutex
	done    []Result
	pending int
}

// NewLoader creates a loader with the given number of workers.
func NewLoader(opener Opener, workers int) *Loader {
	return &Loader{opener: opener, numWorkers: max(workers, 1)}
}

// Start launches the worker goroutines.
func (l *Loader) Start() {
	if l.running {
		return
	}
	l.workChan = make(chan Request, 64)
	l.stopChan = make(chan struct{})
	l.running = true

	for i := 0; i < l.numWorkers; i++ {
		l.wg.Add(1)
		go l.worker()
	}
}

// Stop signals the workers to exit and waits for in-flight decodes to finish.
// Queued requests that no worker picked up are dropped and no longer count as
// pending.
func (l *Loader) Stop() {
	if !l.running {
		return
	}
	close(l.stopChan)
	l.senders.Wait()
	l.wg.Wait()

	dropped := 0
drain:
	for {
		select {
		case <-l.workChan:
			dropped++
		default:
			break drain
		}
	}
	l.mu.Lock()
	l.pending -= dropped
	l.mu.Unlock()
	l.running = false
}

// Request queues a decode without blocking the caller.
func (l *Loader) Request(req Request) {
	if !l.running {
		l.Start()
	}
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()

	work, stop := l.workChan, l.stopChan
	l.senders.Add(1)
	go func() {
		defer l.senders.Done()
		select {
		case work <- req:
		case <-stop:
			l.mu.Lock()
			l.pending--
			l.mu.Unlock()
		}
	}()
}

// RequestCatalog queues every sprite of every type in the catalog.
func (l *Loader) RequestCatalog(c *Catalog) {
	for _, typ := range c.Types() {
		src := c.Tiles[typ]
		for _, v := range tiles.Variants {
			if ref := src.Get(v); ref != "" {
				l.Request(Request{Type: typ, Variant: v, Ref: ref})
			}
		}
	}
}

func (l *Loader) worker() {
	defer l.wg.Done()
	for {
		var req Request
		select {
		case <-l.stopChan:
			return
		case req = <-l.workChan:
		}

		img, err := l.opener.Open(req.Ref)
		if err != nil {
			slog.Warn("sprite load failed", "type", req.Type, "variant", req.Variant.String(), "error", err)
		}
		l.mu.Lock()
		l.done = append(l.done, Result{Request: req, Image: img, Err: err})
		l.pending--
		l.mu.Unlock()
	}
}

// Poll returns the results finished since the last call.
func (l *Loader) Poll() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.done
	l.done = nil
	return out
}

// Pending returns the number of requests not yet finished.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}
