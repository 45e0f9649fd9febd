package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

const DefaultDebounce = 100 * time.Millisecond

// Event reports that the watched file changed. Op is the last operation seen
// in the debounced burst.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher watches one file through its parent directory, so replacements by
// rename are seen too.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	name     string
	debounce time.Duration

	events chan Event
	errors chan error
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, watchErr(path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, watchErr(abs, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, watchErr(abs, err)
	}

	w := &Watcher{
		fs:       fw,
		path:     abs,
		name:     filepath.Base(abs),
		debounce: DefaultDebounce,
		events:   make(chan Event, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) Events() <-chan Event { return w.events }

func (w *Watcher) Errors() <-chan error { return w.errors }

func (w *Watcher) Path() string { return w.path }

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.events)
		close(w.errors)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending Event
	)

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name || !relevant(ev.Op) {
				continue
			}
			pending = Event{Path: w.path, Op: ev.Op}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.events <- pending:
			case <-w.done:
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- watchErr(w.path, err):
			default:
			}
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) ||
		op.Has(fsnotify.Create) ||
		op.Has(fsnotify.Rename) ||
		op.Has(fsnotify.Remove)
}

func watchErr(path string, err error) error {
	return &domain.OpError{
		Op:   "watcher.watch",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}
