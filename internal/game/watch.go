package game

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher collapses on-disk edits to tile configs and map files into a
// single reload signal. The viewer polls Reload once per frame, so any
// burst of editor events between frames triggers exactly one reload.
type Watcher struct {
	fsw *fsnotify.Watcher

	// Reload holds at most one pending signal; further edits are folded
	// into it until the viewer drains the channel.
	Reload chan struct{}
}

// NewWatcher watches the given directories for asset changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:    fsw,
		Reload: make(chan struct{}, 1),
	}
	go w.run()
	return w, nil
}

// Close stops watching. The Reload channel stays open but receives no
// further signals.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isAssetFile(event.Name) {
				continue
			}
			select {
			case w.Reload <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: asset watcher: %v", err)
		}
	}
}

func isAssetFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml" || ext == ".map"
}
