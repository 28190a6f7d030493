package extraction

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
)

// RulesWatcher hot-reloads a rules overlay file into an Engine.  Each change
// event re-loads and re-validates the full overlay; only a snapshot that
// passes validation is swapped in, so a half-written or broken file can never
// take down extraction.
type RulesWatcher struct {
	engine  *Engine
	path    string
	logger  logging.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewRulesWatcher starts watching path.  The parent directory is watched
// rather than the file itself because editors and configmap mounts replace
// files by rename, which drops a direct file watch.
func NewRulesWatcher(engine *Engine, path string, logger logging.Logger) (*RulesWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIntakeRulesLoad, "failed to create file watcher")
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, errors.Wrap(err, errors.ErrCodeIntakeRulesLoad, "failed to watch rules directory").
			WithDetail(path)
	}

	w := &RulesWatcher{
		engine:  engine,
		path:    path,
		logger:  logger.Named("rules-watcher"),
		watcher: fw,
		done:    make(chan struct{}),
	}
	go w.run()
	w.logger.Info("watching rules file", logging.String("path", path))
	return w, nil
}

func (w *RulesWatcher) run() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("rules watcher error", logging.Err(err))
		case <-w.done:
			return
		}
	}
}

func (w *RulesWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

func (w *RulesWatcher) reload() {
	rs, err := LoadRulesFile(w.path)
	if err != nil {
		w.engine.recorder.RecordRulesSwap(false)
		w.logger.Warn("rules reload failed, keeping previous snapshot",
			logging.String("path", w.path),
			logging.Err(err))
		return
	}
	if err := w.engine.SwapRules(rs); err != nil {
		w.logger.Warn("rules swap rejected", logging.Err(err))
	}
}

// Close stops the watcher.  Safe to call once.
func (w *RulesWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
