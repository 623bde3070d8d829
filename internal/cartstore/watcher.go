package cartstore

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/nichebazar/marketplace/internal/logging"
)

// Watch mirrors changes to the persisted cart back into the store, the same
// way a second browser tab's storage event would. Whatever is on disk wins
// wholesale; no merge. Blocks until ctx is done.
func Watch(ctx context.Context, s *Store, p *FilePersister) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(p.Path()); err != nil {
		return err
	}

	l := logging.FromContext(ctx).With("component", "cartstore.watch")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			items, err := p.Load()
			if err != nil {
				l.Warn("reload failed", "error", err)
				continue
			}
			s.Replace(items)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Warn("watch error", "error", err)
		}
	}
}
