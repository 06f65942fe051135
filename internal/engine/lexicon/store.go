package lexicon

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	"github.com/cortexmed/clinextract/pkg/errors"
)

// ---------------------------------------------------------------------------
// Store — atomically swappable Lexicon holder
// ---------------------------------------------------------------------------

// Store holds the current Lexicon and swaps it atomically on reload.  Readers
// on the extraction hot path call Current() once per document and keep the
// returned pointer for the whole call, so a reload never changes semantics
// mid-document.
type Store struct {
	current atomic.Pointer[Lexicon]
	dir     string
	logger  logging.Logger
}

// NewStore creates a Store seeded with lx.
func NewStore(lx *Lexicon, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Store{logger: logger.Named("lexicon")}
	s.current.Store(lx)
	return s
}

// NewStoreFromDir loads dir and creates a Store that can later Watch it.
func NewStoreFromDir(dir string, logger logging.Logger) (*Store, error) {
	lx, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	s := NewStore(lx, logger)
	s.dir = dir
	return s, nil
}

// Current returns the active Lexicon.
func (s *Store) Current() *Lexicon {
	return s.current.Load()
}

// Replace atomically swaps in a new Lexicon.
func (s *Store) Replace(lx *Lexicon) {
	if lx == nil {
		return
	}
	s.current.Store(lx)
	stats := lx.Stats()
	s.logger.Info("lexicon replaced",
		logging.Int("domains", stats.Domains),
		logging.Int("terms", stats.Terms),
	)
}

// Reload re-reads the watched directory and swaps the result in.  A failed
// reload keeps the previous Lexicon active.
func (s *Store) Reload() error {
	if s.dir == "" {
		return errors.New(errors.ErrCodeLexiconReloadFailed, "store has no lexicon directory to reload")
	}
	lx, err := LoadDir(s.dir)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeLexiconReloadFailed, "lexicon reload failed")
	}
	s.Replace(lx)
	return nil
}

// Watch monitors the lexicon directory and reloads on file changes until ctx
// is cancelled.  A reload failure is logged and the previous tables stay
// active; only the initial load at startup is fatal.
func (s *Store) Watch(ctx context.Context) error {
	if s.dir == "" {
		return errors.New(errors.ErrCodeLexiconReloadFailed, "store has no lexicon directory to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeLexiconReloadFailed, "failed to create lexicon watcher")
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return errors.Wrap(err, errors.ErrCodeLexiconReloadFailed, "failed to watch lexicon directory").
			WithDetail(s.dir)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isLexiconFile(ev.Name) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := s.Reload(); err != nil {
					s.logger.Warn("lexicon reload failed, keeping previous tables",
						logging.String("file", ev.Name),
						logging.Err(err),
					)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("lexicon watcher error", logging.Err(err))
			}
		}
	}()

	return nil
}

func isLexiconFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
