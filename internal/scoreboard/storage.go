package scoreboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

type MemoryStorage struct {
	data []Entry
}

func NewMemoryStorage(initial []Entry) *MemoryStorage {
	return &MemoryStorage{data: slices.Clone(initial)}
}

func (m *MemoryStorage) Load() ([]Entry, error) {
	return slices.Clone(m.data), nil
}

func (m *MemoryStorage) Save(entries []Entry) error {
	m.data = slices.Clone(entries)
	return nil
}

// FileStorage keeps the table as a zstd-compressed msgpack file.
type FileStorage struct {
	Path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{Path: path}
}

func (f *FileStorage) Load() ([]Entry, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	zr, err := zstd.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var entries []Entry
	if err := msgpack.NewDecoder(zr).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return entries, nil
}

// Save writes to a temporary file and renames it over the old table.
func (f *FileStorage) Save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(entries); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}
