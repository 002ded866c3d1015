package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
	seqExt   = ".seq"
	tmpExt   = ".tmp"
)

// fileCollection keeps a whole collection in memory and rewrites its JSON
// array file after every mutation. Ids come from a counter kept in a
// sidecar "<path>.seq" file, so they are never reused after a delete.
//
// The in-memory slice is replaced only once the file write succeeded.
type fileCollection[T any] struct {
	fs    afero.Fs
	path  string
	idOf  func(*T) int
	setID func(*T, int)

	mu      sync.RWMutex
	records []T
	lastID  int
}

func openCollection[T any](fsys afero.Fs, path string, idOf func(*T) int, setID func(*T, int)) (*fileCollection[T], error) {
	c := &fileCollection[T]{
		fs:    fsys,
		path:  path,
		idOf:  idOf,
		setID: setID,
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *fileCollection[T]) load() error {
	data, err := afero.ReadFile(c.fs, c.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", c.path, err)
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &c.records); err != nil {
			return fmt.Errorf("decode %s: %w", c.path, err)
		}
	}

	for i := range c.records {
		c.lastID = max(c.lastID, c.idOf(&c.records[i]))
	}

	seq, err := afero.ReadFile(c.fs, c.path+seqExt)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", c.path+seqExt, err)
	}
	if s := strings.TrimSpace(string(seq)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("decode %s: %w", c.path+seqExt, err)
		}
		c.lastID = max(c.lastID, n)
	}
	return nil
}

func (c *fileCollection[T]) all() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.records)
}

func (c *fileCollection[T]) find(match func(*T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.records {
		if match(&c.records[i]) {
			return c.records[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *fileCollection[T]) findByID(id int) (T, bool) {
	return c.find(func(rec *T) bool { return c.idOf(rec) == id })
}

func (c *fileCollection[T]) indexOf(id int) int {
	return slices.IndexFunc(c.records, func(rec T) bool { return c.idOf(&rec) == id })
}

func (c *fileCollection[T]) insert(rec *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.lastID + 1
	if err := c.writeSeq(next); err != nil {
		return err
	}
	c.setID(rec, next)

	updated := append(slices.Clone(c.records), *rec)
	if err := c.writeRecords(updated); err != nil {
		return err
	}
	c.records = updated
	c.lastID = next
	return nil
}

func (c *fileCollection[T]) replace(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(c.idOf(&rec))
	if idx < 0 {
		return ErrNotFound
	}
	updated := slices.Clone(c.records)
	updated[idx] = rec
	if err := c.writeRecords(updated); err != nil {
		return err
	}
	c.records = updated
	return nil
}

func (c *fileCollection[T]) remove(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	updated := slices.Delete(slices.Clone(c.records), idx, idx+1)
	if err := c.writeRecords(updated); err != nil {
		return err
	}
	c.records = updated
	return nil
}

// writeRecords must be called with mu held.
func (c *fileCollection[T]) writeRecords(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	return c.writeFile(c.path, data)
}

// writeSeq must be called with mu held.
func (c *fileCollection[T]) writeSeq(lastID int) error {
	return c.writeFile(c.path+seqExt, []byte(strconv.Itoa(lastID)))
}

// writeFile writes to a temp file and renames it over path.
func (c *fileCollection[T]) writeFile(path string, data []byte) error {
	if err := c.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	tmp := path + tmpExt
	if err := afero.WriteFile(c.fs, tmp, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := c.fs.Rename(tmp, path); err != nil {
		_ = c.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
