// Package storage manages the on-disk "latest" input files and the export
// folder inside the configured storage directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Aliases for the four latest-file slots.
const (
	AliasDictionary = "dictionary_latest"
	AliasKo         = "ko_latest"
	AliasEn         = "en_latest"
	AliasRu         = "ru_latest"
)

type Store struct {
	dir string
}

// New ensures the storage directory exists and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// SaveLatest replaces the alias slot with data. The bytes go to a temp file
// in the same directory first and are renamed into place, so a concurrent
// reader never observes a half-written file. Slots left over with a
// different extension are removed afterwards.
func (s *Store) SaveLatest(alias, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	target := filepath.Join(s.dir, alias+ext)

	tmp, err := os.CreateTemp(s.dir, alias+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("replace %s: %w", target, err)
	}

	for _, stale := range s.slotCandidates(alias) {
		if stale != target {
			os.Remove(stale)
		}
	}
	return target, nil
}

// LatestPath returns the stored file for an alias, if any.
func (s *Store) LatestPath(alias string) (string, bool) {
	matches := s.slotCandidates(alias)
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[len(matches)-1], true
}

// ReadLatest loads the slot content. ok is false when the slot is empty.
func (s *Store) ReadLatest(alias string) (data []byte, ext string, ok bool, err error) {
	path, found := s.LatestPath(alias)
	if !found {
		return nil, "", false, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", false, fmt.Errorf("read %s: %w", path, err)
	}
	return b, strings.ToLower(filepath.Ext(path)), true, nil
}

// ExportDir ensures and returns the exports subfolder.
func (s *Store) ExportDir() (string, error) {
	dir := filepath.Join(s.dir, "exports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return dir, nil
}

// slotCandidates lists alias.* files, excluding in-flight temp files.
func (s *Store) slotCandidates(alias string) []string {
	matches, _ := filepath.Glob(filepath.Join(s.dir, alias+".*"))
	out := matches[:0]
	for _, m := range matches {
		if !strings.Contains(filepath.Base(m), ".tmp-") {
			out = append(out, m)
		}
	}
	return out
}

// Timestamp returns the filename timestamp used for exports.
func Timestamp() string {
	return time.Now().Format("20060102_150405")
}
