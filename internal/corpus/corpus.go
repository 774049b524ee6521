// Package corpus reads sentence-aligned bitext for alignment training.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrLengthMismatch is returned when the source and target sides do not
// have the same number of lines.
var ErrLengthMismatch = errors.New("source and target line counts differ")

// Pair is one tokenized sentence pair.
type Pair struct {
	Source []string
	Target []string
}

// NewPair tokenizes a source line and a target line on whitespace.
func NewPair(source, target string) Pair {
	return Pair{Source: strings.Fields(source), Target: strings.Fields(target)}
}

// Memory is an in-memory corpus.
type Memory []Pair

// Each calls fn for every pair in order.
func (m Memory) Each(fn func(source, target []string) error) error {
	for _, p := range m {
		if err := fn(p.Source, p.Target); err != nil {
			return err
		}
	}
	return nil
}

// File is a corpus backed by two line-aligned files: line i of the source
// file pairs with line i of the target file. Every call to Each rewinds
// both files.
type File struct {
	SourcePath string
	TargetPath string

	source *os.File
	target *os.File
}

// Open opens a file-backed corpus.
func Open(sourcePath, targetPath string) (*File, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	tgt, err := os.Open(targetPath)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("open target: %w", err)
	}
	return &File{
		SourcePath: sourcePath,
		TargetPath: targetPath,
		source:     src,
		target:     tgt,
	}, nil
}

// Close closes both files.
func (c *File) Close() error {
	return errors.Join(c.source.Close(), c.target.Close())
}

// Each rewinds the corpus and calls fn for every sentence pair.
func (c *File) Each(fn func(source, target []string) error) error {
	if _, err := c.source.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind source: %w", err)
	}
	if _, err := c.target.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind target: %w", err)
	}
	return scanPairs(c.source, c.target, fn)
}

// Load reads a whole file-backed corpus into memory.
func Load(sourcePath, targetPath string) (Memory, error) {
	c, err := Open(sourcePath, targetPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	var m Memory
	err = c.Each(func(source, target []string) error {
		m = append(m, Pair{Source: source, Target: target})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func scanPairs(source, target io.Reader, fn func(source, target []string) error) error {
	ss := newScanner(source)
	ts := newScanner(target)
	line := 0
	for {
		line++
		sok := ss.Scan()
		tok := ts.Scan()
		if !sok || !tok {
			if err := errors.Join(ss.Err(), ts.Err()); err != nil {
				return err
			}
			if sok != tok {
				return fmt.Errorf("%w at line %d", ErrLengthMismatch, line)
			}
			return nil
		}
		if err := fn(strings.Fields(ss.Text()), strings.Fields(ts.Text())); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return sc
}
