package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// Watch reports changes to the saved files on the returned channel, debounced.
// The channel closes when ctx is done.
//
// Filesystem events on the database only trigger a look at the files row;
// a notification is sent when that row differs from the last one seen. Opening
// the database (reads included) touches the WAL files, so events alone are not
// a change. Writes made by this process are reported too.
func (s Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(s.Dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	base := filepath.Base(s.SQLitePath())
	last, err := s.filesStamp(ctx)
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	go func() {
		defer close(out)
		defer w.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				name := filepath.Base(ev.Name)
				if name != base && name != base+"-wal" {
					continue
				}
				if ev.Op&fsnotify.Write == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				cur, err := s.filesStamp(ctx)
				if err != nil {
					s.logger().Warn("store watch read", slog.Any("err", err))
					continue
				}
				if cur == last {
					continue
				}
				last = cur
				select {
				case out <- struct{}{}:
				default:
					// A notification is already pending.
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger().Warn("store watch error", slog.Any("err", err))
			}
		}
	}()
	return out, nil
}

type filesStamp struct {
	ok        bool
	updatedAt int64
	value     string
}

func (s Store) filesStamp(ctx context.Context) (filesStamp, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return filesStamp{}, err
	}
	defer db.Close()

	var st filesStamp
	err = db.QueryRowContext(ctx, `SELECT v, updated_at_unixms FROM kv WHERE k = ?`, FilesKey).Scan(&st.value, &st.updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return filesStamp{}, nil
	}
	if err != nil {
		return filesStamp{}, err
	}
	st.ok = true
	return st, nil
}
