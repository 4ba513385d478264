package model

import "strings"

// Collection is the ordered set of saved files, newest first, indexed by name.
//
// Names are unique within a collection. The zero value is an empty collection.
type Collection struct {
	files  []File
	byName map[string]int
}

func NewCollection() *Collection {
	return &Collection{byName: map[string]int{}}
}

// FromFiles builds a collection from a persisted sequence.
// When the same name appears more than once, the first occurrence wins and the
// later names are returned in dups.
func FromFiles(files []File) (c *Collection, dups []string) {
	c = &Collection{
		files:  make([]File, 0, len(files)),
		byName: make(map[string]int, len(files)),
	}
	for _, f := range files {
		if _, ok := c.byName[f.Name]; ok {
			dups = append(dups, f.Name)
			continue
		}
		c.byName[f.Name] = len(c.files)
		c.files = append(c.files, f)
	}
	return c, dups
}

// Clone returns an independent copy.
func (c *Collection) Clone() *Collection {
	out, _ := FromFiles(c.Files())
	return out
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.files)
}

// Files returns a copy of the files in display order.
func (c *Collection) Files() []File {
	if c == nil {
		return []File{}
	}
	out := make([]File, len(c.files))
	copy(out, c.files)
	return out
}

func (c *Collection) Names() []string {
	out := make([]string, 0, c.Len())
	for _, f := range c.Files() {
		out = append(out, f.Name)
	}
	return out
}

// Index returns the position of name, or -1.
func (c *Collection) Index(name string) int {
	if c == nil || c.byName == nil {
		return -1
	}
	if i, ok := c.byName[name]; ok {
		return i
	}
	return -1
}

func (c *Collection) Get(name string) (File, bool) {
	i := c.Index(name)
	if i < 0 {
		return File{}, false
	}
	return c.files[i], true
}

func (c *Collection) At(i int) (File, error) {
	if i < 0 || i >= c.Len() {
		return File{}, IndexError{Index: i, Len: c.Len()}
	}
	return c.files[i], nil
}

// Upsert stores f. An existing file with the same name keeps its position and
// takes the new content; otherwise f is prepended.
// It reports whether a new file was created.
func (c *Collection) Upsert(f File) (created bool, err error) {
	if err := f.Validate(); err != nil {
		return false, err
	}
	c.init()
	if i, ok := c.byName[f.Name]; ok {
		c.files[i].Content = f.Content
		return false, nil
	}
	c.prepend(f)
	return true, nil
}

// Add prepends f and refuses names that are already taken.
func (c *Collection) Add(f File) error {
	if err := f.Validate(); err != nil {
		return err
	}
	c.init()
	if _, ok := c.byName[f.Name]; ok {
		return ConflictError{Name: f.Name}
	}
	c.prepend(f)
	return nil
}

// Rename changes a file's name in place.
func (c *Collection) Rename(oldName, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return ErrEmptyName
	}
	i := c.Index(oldName)
	if i < 0 {
		return NotFoundError{Kind: "file", ID: oldName}
	}
	if oldName == newName {
		return nil
	}
	if _, ok := c.byName[newName]; ok {
		return ConflictError{Name: newName}
	}
	delete(c.byName, oldName)
	c.files[i].Name = newName
	c.byName[newName] = i
	return nil
}

// RemoveAt deletes the file at position i; the rest keep their order.
func (c *Collection) RemoveAt(i int) (File, error) {
	if i < 0 || i >= c.Len() {
		return File{}, IndexError{Index: i, Len: c.Len()}
	}
	f := c.files[i]
	c.files = append(c.files[:i:i], c.files[i+1:]...)
	c.reindex()
	return f, nil
}

func (c *Collection) Remove(name string) (File, error) {
	i := c.Index(name)
	if i < 0 {
		return File{}, NotFoundError{Kind: "file", ID: name}
	}
	return c.RemoveAt(i)
}

func (c *Collection) init() {
	if c.byName == nil {
		c.reindex()
	}
}

func (c *Collection) prepend(f File) {
	c.files = append([]File{f}, c.files...)
	c.reindex()
}

func (c *Collection) reindex() {
	c.byName = make(map[string]int, len(c.files))
	for i, f := range c.files {
		c.byName[f.Name] = i
	}
}
