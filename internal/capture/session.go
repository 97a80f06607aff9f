package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// DirLayout names session directories after their start time
const DirLayout = "2006-01-02_15-04-05"

// Camera produces one still image per call
type Camera interface {
	Capture(ctx context.Context, path string, frame int) error
}

// Encoder turns a directory of numbered frames into one video
type Encoder interface {
	Encode(ctx context.Context, dir, pattern string) (string, error)
}

type Options struct {
	OutputRoot   string
	Settling     time.Duration
	FramePattern string
	EncodeOnStop bool
	Now          func() time.Time
}

// Plan is what a single session captures
type Plan struct {
	Frames   int
	Interval time.Duration
}

// Progress is a snapshot readable from any goroutine
type Progress struct {
	Active    bool
	Encoding  bool
	Current   int
	Total     int
	Captured  int
	Dir       string
	Video     string
	LastError string
}

// Session runs at most one capture loop at a time. Start spawns the loop,
// Stop joins it; progress fields are atomics so the render loop never locks.
type Session struct {
	camera  Camera
	encoder Encoder
	opts    Options

	// Serialises Start and Stop
	mutex    sync.Mutex
	stopChan chan struct{}
	done     chan struct{}

	active   atomic.Bool
	encoding atomic.Bool
	current  atomic.Int64
	total    atomic.Int64
	captured atomic.Int64

	stateMutex sync.RWMutex
	dir        string
	video      string
	lastError  string
}

func New(camera Camera, encoder Encoder, opts Options) *Session {
	if opts.FramePattern == "" {
		opts.FramePattern = "%05d.jpg"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{
		camera:  camera,
		encoder: encoder,
		opts:    opts,
	}
}

// Start begins a session unless one is already running
func (s *Session) Start(plan Plan) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.active.Load() {
		slog.Debug("Start ignored, session already active")
		return nil
	}

	dir, err := s.createSessionDir()
	if err != nil {
		s.setLastError(err.Error())
		return err
	}

	s.clearLastError()
	s.stateMutex.Lock()
	s.dir = dir
	s.video = ""
	s.stateMutex.Unlock()

	s.current.Store(0)
	s.captured.Store(0)
	s.total.Store(int64(plan.Frames))
	s.active.Store(true)

	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(dir, plan, s.stopChan, s.done)

	slog.Info("Session started", "dir", dir, "frames", plan.Frames, "interval", plan.Interval)
	return nil
}

// Stop requests cancellation and blocks until the capture loop has exited.
// With EncodeOnStop set this includes the encode of the partial sequence.
func (s *Session) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.active.Load() {
		return
	}

	slog.Info("Stopping session...")
	close(s.stopChan)
	<-s.done

	s.current.Store(0)
	s.stopChan = nil
	s.done = nil
	slog.Info("Session stopped", "captured", s.captured.Load())
}

// Wait blocks until the current session, if any, has finished
func (s *Session) Wait() {
	s.mutex.Lock()
	done := s.done
	s.mutex.Unlock()

	if done != nil {
		<-done
	}
}

func (s *Session) Progress() Progress {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return Progress{
		Active:    s.active.Load(),
		Encoding:  s.encoding.Load(),
		Current:   int(s.current.Load()),
		Total:     int(s.total.Load()),
		Captured:  int(s.captured.Load()),
		Dir:       s.dir,
		Video:     s.video,
		LastError: s.lastError,
	}
}

func (s *Session) LastError() string {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return s.lastError
}

func (s *Session) run(dir string, plan Plan, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer func() {
		s.current.Store(0)
		s.active.Store(false)
	}()

	ctx := context.Background()
	pause := s.opts.Settling + plan.Interval
	completed := true

	s.current.Store(0)
	for frame := 1; frame <= plan.Frames; frame++ {
		if stopRequested(stop) {
			completed = false
			break
		}
		s.current.Store(int64(frame))

		path := filepath.Join(dir, fmt.Sprintf(s.opts.FramePattern, frame))
		if err := s.camera.Capture(ctx, path, frame); err != nil {
			s.setLastError(fmt.Sprintf("frame %d: %v", frame, err))
			if errors.Is(err, exec.ErrNotFound) {
				completed = false
				break
			}
		} else {
			s.captured.Add(1)
			slog.Debug("Frame captured", "frame", frame, "path", path)
		}

		if frame == plan.Frames {
			if stopRequested(stop) {
				completed = false
			}
			break
		}
		if !sleep(stop, pause) {
			completed = false
			break
		}
	}

	captured := s.captured.Load()
	if captured > 0 && (completed || s.opts.EncodeOnStop) {
		s.encode(ctx, dir)
	} else {
		slog.Info("Session ended without encoding", "captured", captured, "completed", completed)
	}
}

func (s *Session) encode(ctx context.Context, dir string) {
	s.encoding.Store(true)
	defer s.encoding.Store(false)

	slog.Info("Encoding session", "dir", dir)
	video, err := s.encoder.Encode(ctx, dir, s.opts.FramePattern)
	if err != nil {
		s.setLastError(fmt.Sprintf("encode: %v", err))
		return
	}

	s.stateMutex.Lock()
	s.video = video
	s.stateMutex.Unlock()
	slog.Info("Timelapse video saved to", "file", video)
}

func (s *Session) createSessionDir() (string, error) {
	if err := os.MkdirAll(s.opts.OutputRoot, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Join(s.opts.OutputRoot, s.opts.Now().Format(DirLayout))
	dir := base
	for i := 2; ; i++ {
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("failed to create session directory: %w", err)
		}
		dir = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Session) setLastError(msg string) {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	s.lastError = msg
	slog.Warn("Session error", "error", msg)
}

func (s *Session) clearLastError() {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	s.lastError = ""
}

func stopRequested(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}

// sleep waits for d and reports false if stop fired first
func sleep(stop <-chan struct{}, d time.Duration) bool {
	if d <= 0 {
		return !stopRequested(stop)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}
