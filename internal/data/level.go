package data

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Level is one playfield grid, loaded from levelNN.yaml. Each cell holds an
// entity kind name or is empty. The data package does not interpret names;
// the game validates them when it builds the world.
type Level struct {
	Name   string
	Width  int
	Height int
	cells  []string // flat array [col * height + row]
	count  int
}

// NewLevel returns an empty width × height level.
func NewLevel(name string, width, height int) *Level {
	return &Level{
		Name:   name,
		Width:  width,
		Height: height,
		cells:  make([]string, width*height),
	}
}

// Set places kind at (col, row). Cells are filled at most once.
func (l *Level) Set(col, row int, kind string) error {
	if col < 0 || col >= l.Width || row < 0 || row >= l.Height {
		return fmt.Errorf("cell (%d,%d) outside %dx%d grid", col, row, l.Width, l.Height)
	}
	if kind == "" {
		return fmt.Errorf("cell (%d,%d): empty kind", col, row)
	}
	i := col*l.Height + row
	if prev := l.cells[i]; prev != "" {
		return fmt.Errorf("cell (%d,%d) already holds %s", col, row, prev)
	}
	l.cells[i] = kind
	l.count++
	return nil
}

// ContentsOf returns the kind name at (col, row), or "" when the cell is
// empty or off the grid.
func (l *Level) ContentsOf(col, row int) string {
	if col < 0 || col >= l.Width || row < 0 || row >= l.Height {
		return ""
	}
	return l.cells[col*l.Height+row]
}

// Count returns the number of occupied cells.
func (l *Level) Count() int {
	return l.count
}

// levelCell places kind at (col, row) and, with span > 1, at the span-1
// cells to its right as well.
type levelCell struct {
	Kind string `yaml:"kind"`
	Col  int    `yaml:"col"`
	Row  int    `yaml:"row"`
	Span int    `yaml:"span"`
}

type levelFile struct {
	Name   string      `yaml:"name"`
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Cells  []levelCell `yaml:"cells"`
}

// LoadLevel reads a single level file.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	var file levelFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}
	if file.Width <= 0 || file.Height <= 0 {
		return nil, fmt.Errorf("level %s: bad size %dx%d", path, file.Width, file.Height)
	}

	lvl := NewLevel(file.Name, file.Width, file.Height)
	for _, c := range file.Cells {
		span := max(c.Span, 1)
		for i := 0; i < span; i++ {
			if err := lvl.Set(c.Col+i, c.Row, c.Kind); err != nil {
				return nil, fmt.Errorf("level %s: %w", path, err)
			}
		}
	}
	return lvl, nil
}

// LevelDir serves numbered level files from one directory.
type LevelDir struct {
	dir string
}

func NewLevelDir(dir string) *LevelDir {
	return &LevelDir{dir: dir}
}

// Path returns the file backing level n, e.g. level01.yaml.
func (d *LevelDir) Path(n int) string {
	return filepath.Join(d.dir, fmt.Sprintf("level%02d.yaml", n))
}

// Load reads level n.
func (d *LevelDir) Load(n int) (*Level, error) {
	return LoadLevel(d.Path(n))
}
