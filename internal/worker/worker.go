// Package worker serializes store mutations on a single background goroutine.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/studiowebux/gist/internal/types"
)

// QueueSize bounds the request and result channels
const QueueSize = 64

var (
	// ErrQueueFull is returned by Submit when the request queue is saturated
	ErrQueueFull = errors.New("operation queue is full")
	// ErrClosed is returned by Submit after Close
	ErrClosed = errors.New("worker is closed")
)

// Store is the subset of the gist store the worker drives
type Store interface {
	Insert(content, tags string) (int64, error)
	Update(id int64, content, tags string) error
	Delete(id int64) (bool, error)
	Get(id int64) (*types.Gist, error)
	List(limit int, sortKey string) ([]types.Gist, error)
}

// Op identifies a request kind
type Op int

const (
	OpAdd Op = iota
	OpUpdate
	OpDelete
	OpReload
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpReload:
		return "reload"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Mutates reports whether the operation changes stored data
func (o Op) Mutates() bool {
	return o != OpReload
}

// Request is one queued store operation
type Request struct {
	Op      Op
	ID      int64
	Content string
	Tags    string
}

// Add builds an insert request
func Add(content, tags string) Request {
	return Request{Op: OpAdd, Content: content, Tags: tags}
}

// Update builds an update request
func Update(id int64, content, tags string) Request {
	return Request{Op: OpUpdate, ID: id, Content: content, Tags: tags}
}

// Delete builds a delete request
func Delete(id int64) Request {
	return Request{Op: OpDelete, ID: id}
}

// Reload builds a full list request
func Reload() Request {
	return Request{Op: OpReload}
}

// Result is the outcome of one request, delivered in submission order.
// Err is set for failures; Found is meaningful for deletes; Gist carries the
// stored row after add/update; Gists carries the list after reload.
type Result struct {
	Op    Op
	ID    int64
	Found bool
	Gist  *types.Gist
	Gists []types.Gist
	Err   error
}

// Failed reports whether the request did not complete
func (r Result) Failed() bool {
	return r.Err != nil
}

// Worker owns the store after hand-off and runs requests one at a time
type Worker struct {
	store      Store
	requests   chan Request
	results    chan Result
	wg         sync.WaitGroup
	closeOnce  sync.Once
	mu         sync.Mutex
	closed     bool
	cancelFunc context.CancelFunc
}

// New creates a worker for store. Call Start before submitting.
func New(store Store) *Worker {
	return &Worker{
		store:    store,
		requests: make(chan Request, QueueSize),
		results:  make(chan Result, QueueSize),
	}
}

// Start spawns the single consumer goroutine
func (w *Worker) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel

	w.wg.Add(1)
	go w.run(ctx)
}

// Submit queues a request without blocking
func (w *Worker) Submit(req Request) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	select {
	case w.requests <- req:
		return nil
	default:
		return ErrQueueFull
	}
}

// Results exposes the result channel; it is closed once Close has drained it
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Poll drains every result currently available without blocking
func (w *Worker) Poll() []Result {
	var out []Result
	for {
		select {
		case res, ok := <-w.results:
			if !ok {
				return out
			}
			out = append(out, res)
		default:
			return out
		}
	}
}

// Close stops accepting requests and lets queued ones finish. Results not yet
// consumed are returned in submission order and Results is closed. Only the
// first call returns results.
func (w *Worker) Close() []Result {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.requests)
	}
	w.mu.Unlock()

	var pending []Result
	w.closeOnce.Do(func() {
		done := make(chan struct{})
		go func() {
			w.wg.Wait()
			close(done)
		}()

		// keep reading so a full result queue cannot stall the worker
		for waiting := true; waiting; {
			select {
			case res := <-w.results:
				pending = append(pending, res)
			case <-done:
				waiting = false
			}
		}
		pending = append(pending, w.Poll()...)

		if w.cancelFunc != nil {
			w.cancelFunc()
		}
		close(w.results)
	})
	return pending
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-w.requests:
			if !ok {
				return
			}

			res := w.execute(req)
			if res.Err != nil {
				log.Printf("worker: %s #%d failed: %v", req.Op, req.ID, res.Err)
			}

			select {
			case w.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) execute(req Request) Result {
	res := Result{Op: req.Op, ID: req.ID}

	switch req.Op {
	case OpAdd:
		id, err := w.store.Insert(req.Content, req.Tags)
		if err != nil {
			res.Err = err
			return res
		}
		res.ID = id
		res.Gist = w.stored(id, req)

	case OpUpdate:
		if err := w.store.Update(req.ID, req.Content, req.Tags); err != nil {
			res.Err = err
			return res
		}
		res.Gist = w.stored(req.ID, req)

	case OpDelete:
		found, err := w.store.Delete(req.ID)
		if err != nil {
			res.Err = err
			return res
		}
		res.Found = found

	case OpReload:
		gists, err := w.store.List(0, "created_at")
		if err != nil {
			res.Err = err
			return res
		}
		res.Gists = gists

	default:
		res.Err = fmt.Errorf("unknown operation %d", int(req.Op))
	}

	return res
}

// stored re-reads a row so results carry store-assigned fields; the request
// values are used if the read fails
func (w *Worker) stored(id int64, req Request) *types.Gist {
	g, err := w.store.Get(id)
	if err == nil && g != nil {
		return g
	}
	if err != nil {
		log.Printf("worker: reading back #%d: %v", id, err)
	}
	return &types.Gist{ID: id, Content: req.Content, Tags: req.Tags, CreatedAt: time.Now()}
}
