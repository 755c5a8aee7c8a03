package dataset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events an editor produces on save
const reloadDebounce = 75 * time.Millisecond

// File is a Local source loaded from a file with one entry per line
type File struct {
	*Local
	name string
	path string
}

// LoadFile reads path. Blank lines are skipped.
func LoadFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset file %s: %w", path, err)
	}
	f := &File{Local: NewLocal(nil), name: filepath.Base(abs), path: abs}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the absolute path of the backing file
func (f *File) Path() string { return f.path }

// Name is the dataset name, the file's base name unless Build set one
func (f *File) Name() string { return f.name }

// Reload re-reads the backing file
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("failed to read dataset file: %w", err)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to parse dataset file: %w", err)
	}

	f.Reset(Words(lines...))
	return nil
}

// Watch reloads the file whenever it changes on disk and calls changed
// after each successful reload. It blocks until ctx is done.
func (f *File) Watch(ctx context.Context, changed func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// watch the directory; editors replace files by rename
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", f.path, err)
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if err := f.Reload(); err != nil {
				log.Printf("[watch] reload of %s failed: %v", f.path, err)
				continue
			}
			changed()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[watch] error: %v", err)
		}
	}
}
