package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/pkg/logger"
)

const (
	defaultExtension = ".txt"
	debounceDelay    = 500 * time.Millisecond
)

// DirectorySource reads decoded barcode text from files in one directory.
// Each file holds one payload; its base name is the payload's source.
type DirectorySource struct {
	dir       string
	extension string
	logger    logger.Logger
}

// NewDirectorySource creates a new directory source reading *.txt files
func NewDirectorySource(dir string, logger logger.Logger) *DirectorySource {
	return &DirectorySource{dir: dir, extension: defaultExtension, logger: logger}
}

// Dir returns the watched directory
func (s *DirectorySource) Dir() string {
	return s.dir
}

// List returns every payload file in name order
func (s *DirectorySource) List(ctx context.Context) ([]entity.RawPayload, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && s.isPayload(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	payloads := make([]entity.RawPayload, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.logger.Warn("Failed to read payload file", "file", name, "error", err)
			continue
		}
		payloads = append(payloads, entity.RawPayload{
			Source: name,
			Text:   strings.TrimRight(string(data), "\r\n"),
		})
	}
	return payloads, nil
}

// Watch calls onChange after payload files are created, written, renamed or
// removed, coalescing bursts of events. It blocks until ctx is done.
func (s *DirectorySource) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}
	s.logger.Info("Watching payload directory", "dir", s.dir)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.isPayload(event.Name) || !event.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) {
				continue
			}
			s.logger.Debug("Payload file changed", "file", event.Name, "operation", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("File watcher error", "error", err)
		}
	}
}

func (s *DirectorySource) isPayload(name string) bool {
	return strings.EqualFold(filepath.Ext(name), s.extension)
}
