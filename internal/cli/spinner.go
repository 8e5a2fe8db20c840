package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// starFrames cycle a star through growing point counts.
var starFrames = []string{"✶", "✸", "✹", "✺", "✹", "✸"}

// spinnerInterval is the frame period.
const spinnerInterval = 100 * time.Millisecond

// Spinner animates a star on stderr while render runs. It stops on Stop or
// when its parent context ends, whichever comes first.
type Spinner struct {
	message string
	out     io.Writer

	ctx    context.Context
	cancel context.CancelFunc

	stop     chan struct{}
	finished chan struct{}
	once     sync.Once
	mu       sync.Mutex
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message:  message,
		out:      os.Stderr,
		ctx:      ctx,
		cancel:   cancel,
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start runs the animation in a goroutine.
func (s *Spinner) Start() {
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.finished)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.stop:
			return
		case <-s.ctx.Done():
			s.clear()
			return
		case <-tick.C:
			s.draw(starFrames[frame%len(starFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Stop ends the animation and clears its line. Later calls do nothing.
// Stop must follow Start.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.finished
		s.cancel()
		s.clear()
	})
}

func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended before Stop.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.stop:
		return false
	default:
		return s.ctx.Err() != nil
	}
}
