// Package watcher observes a downloads directory and reports when files
// the user has to fetch manually show up.
package watcher

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Message is one watcher event
type Message struct {
	Kind MessageKind
	// Path of the completed file, set for FileComplete
	Path string
	// Err is set for the Error kind
	Err error
}

// MessageKind discriminates watcher messages
type MessageKind int

const (
	// FileComplete means one watched file appeared
	FileComplete MessageKind = iota
	// AllComplete means every watched file is present, the watcher stops
	// after sending this
	AllComplete
	// Error carries a watch error, the watcher stops after sending this
	Error
)

// Watcher tracks a set of expected file names inside one directory
type Watcher struct {
	// WatchDir is the observed directory
	WatchDir string

	mu        sync.Mutex
	fileState map[string]bool

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// New creates a watcher for the given file names. Files already present
// in watchDir count as complete immediately
func New(watchDir string, files []string) *Watcher {
	state := make(map[string]bool, len(files))
	for _, f := range files {
		_, err := os.Stat(filepath.Join(watchDir, f))
		state[f] = err == nil
	}

	return &Watcher{
		WatchDir:  watchDir,
		fileState: state,
		done:      make(chan struct{}),
	}
}

// Watch starts observing the directory. Messages arrive on the returned
// channel until AllComplete, an error, or Stop
func (w *Watcher) Watch() (<-chan Message, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(w.WatchDir); err != nil {
		fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	messages := make(chan Message)

	go func() {
		defer close(messages)
		defer fsw.Close()

		for {
			select {
			case <-w.done:
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				if w.markComplete(filepath.Base(event.Name)) {
					messages <- Message{Kind: FileComplete, Path: event.Name}
				}
				if w.AllComplete() {
					messages <- Message{Kind: AllComplete}
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				messages <- Message{Kind: Error, Err: err}
				return
			}
		}
	}()

	return messages, nil
}

// Stop ends the watch. Safe to call more than once
func (w *Watcher) Stop() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}

func (w *Watcher) markComplete(fileName string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.fileState[fileName]; !ok {
		return false
	}
	w.fileState[fileName] = true
	return true
}

// FileComplete reports whether the named file has shown up
func (w *Watcher) FileComplete(fileName string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fileState[fileName]
}

// AllComplete reports whether every watched file is present
func (w *Watcher) AllComplete() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, done := range w.fileState {
		if !done {
			return false
		}
	}
	return true
}
