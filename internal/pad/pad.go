// Package pad holds the screen state: the saved collection, the draft being
// edited, and the operations that move between them.
package pad

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"scriptpad/internal/model"
	"scriptpad/internal/script"
	"scriptpad/internal/store"
)

type Pad struct {
	store  store.Store
	runner script.Runner
	log    *slog.Logger

	files *model.Collection
	draft model.File

	now func() time.Time
}

func New(st store.Store, r script.Runner, logger *slog.Logger) *Pad {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if st.Logger == nil {
		st.Logger = logger
	}
	if r.Logger == nil {
		r.Logger = logger
	}
	p := &Pad{
		store:  st,
		runner: r,
		log:    logger,
		files:  model.NewCollection(),
		now:    time.Now,
	}
	p.draft = model.NewDraft(p.now())
	return p
}

func (p *Pad) Store() store.Store { return p.store }

func (p *Pad) Logger() *slog.Logger { return p.log }

// Load publishes the persisted collection. Failures are logged and leave an
// empty collection; they are never returned.
func (p *Pad) Load(ctx context.Context) {
	p.files = p.store.LoadFiles(ctx)
}

// Open is the strict variant of Load used by non-interactive commands, where
// silently replacing an unreadable store would lose data on the next write.
func (p *Pad) Open(ctx context.Context) error {
	c, err := p.store.ReadFiles(ctx)
	if err != nil {
		return err
	}
	p.files = c
	return nil
}

// Files returns the current collection in display order.
func (p *Pad) Files() []model.File { return p.files.Files() }

func (p *Pad) Len() int { return p.files.Len() }

func (p *Pad) Get(name string) (model.File, bool) { return p.files.Get(name) }

func (p *Pad) Index(name string) int { return p.files.Index(name) }

func (p *Pad) Draft() model.File { return p.draft }

func (p *Pad) SetDraft(f model.File) { p.draft = f }

func (p *Pad) SetName(name string) { p.draft.Name = name }

func (p *Pad) SetContent(content string) { p.draft.Content = content }

// NewDraft discards the draft and starts an empty one.
func (p *Pad) NewDraft() model.File {
	p.draft = model.NewDraft(p.now())
	return p.draft
}

// CanSave reports whether Save is offered for the current draft.
func (p *Pad) CanSave() bool {
	return !p.draft.IsBlank() && strings.TrimSpace(p.draft.Name) != ""
}

// Select copies the saved file at position i into the draft.
func (p *Pad) Select(i int) (model.File, error) {
	f, err := p.files.At(i)
	if err != nil {
		return model.File{}, err
	}
	p.draft = f
	return f, nil
}

// Save upserts the draft and writes the whole collection back.
// The in-memory collection only changes when the write succeeds.
func (p *Pad) Save(ctx context.Context) (created bool, err error) {
	next := p.files.Clone()
	created, err = next.Upsert(p.draft)
	if err != nil {
		return false, err
	}
	if err := p.store.WriteFiles(ctx, next); err != nil {
		return false, err
	}
	p.files = next
	p.log.Info("file saved", slog.String("name", p.draft.Name), slog.Bool("created", created))
	return created, nil
}

// Delete removes the entry at position i and writes the whole collection back.
func (p *Pad) Delete(ctx context.Context, i int) (model.File, error) {
	next := p.files.Clone()
	removed, err := next.RemoveAt(i)
	if err != nil {
		return model.File{}, err
	}
	if err := p.store.WriteFiles(ctx, next); err != nil {
		return model.File{}, err
	}
	p.files = next
	p.log.Info("file deleted", slog.String("name", removed.Name), slog.Int("index", i))
	return removed, nil
}

// DeleteNamed removes a file by name.
func (p *Pad) DeleteNamed(ctx context.Context, name string) (model.File, error) {
	i := p.files.Index(name)
	if i < 0 {
		return model.File{}, model.NotFoundError{Kind: "file", ID: name}
	}
	return p.Delete(ctx, i)
}

func (p *Pad) Rename(ctx context.Context, oldName, newName string) error {
	next := p.files.Clone()
	if err := next.Rename(oldName, newName); err != nil {
		return err
	}
	if err := p.store.WriteFiles(ctx, next); err != nil {
		return err
	}
	p.files = next
	if p.draft.Name == oldName {
		p.draft.Name = newName
	}
	return nil
}

// Import merges files into the collection (upsert each, in reverse so the
// first imported file ends up on top). With replace, the collection is
// replaced instead. Returns how many files were created.
func (p *Pad) Import(ctx context.Context, files []model.File, replace bool) (int, error) {
	next := p.files.Clone()
	if replace {
		next = model.NewCollection()
	}
	created := 0
	for i := len(files) - 1; i >= 0; i-- {
		ok, err := next.Upsert(files[i])
		if err != nil {
			return 0, err
		}
		if ok {
			created++
		}
	}
	if err := p.store.WriteFiles(ctx, next); err != nil {
		return 0, err
	}
	p.files = next
	return created, nil
}

// Run evaluates the draft content. See script.Runner.Run for the session contract.
func (p *Pad) Run(ctx context.Context) (*script.Session, error) {
	return p.runner.Run(ctx, p.draft.Name, p.draft.Content)
}
