package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/muncher/model"
)

const levelExt = ".txt"

var (
	ErrEmptyLevel    = errors.New("level has no cells")
	ErrRaggedLevel   = errors.New("level rows differ in length")
	ErrUnknownPiece  = errors.New("unknown piece")
	ErrLevelNotFound = errors.New("level not found")
)

// Levels holds the starting model of every level file in a directory.
// Models are immutable, so sessions share them.
type Levels struct {
	dir    string
	mu     sync.RWMutex
	levels map[string]model.Model
}

func LoadLevels(dir string) (*Levels, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	l := &Levels{dir: dir, levels: make(map[string]model.Model)}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != levelExt {
			continue
		}
		if err := l.reload(filepath.Join(dir, e.Name())); err != nil {
			log.Warnf("skipping level %s: %v", e.Name(), err)
		}
	}
	log.Infof("loaded %d levels from %s", len(l.levels), dir)
	return l, nil
}

func (l *Levels) Get(name string) (model.Model, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.levels[name]
	if !ok {
		return model.Model{}, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
	}
	return m, nil
}

func (l *Levels) Names() []string {
	l.mu.RLock()
	names := make([]string, 0, len(l.levels))
	for name := range l.levels {
		names = append(names, name)
	}
	l.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Watch keeps the levels in sync with the directory until ctx is done.
// The watch is registered before Watch returns.
func (l *Levels) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(event.Name) != levelExt {
					continue
				}
				switch {
				case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
					if err := l.reload(event.Name); err != nil {
						log.Warnf("level %s not reloaded: %v", event.Name, err)
					}
				case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
					l.forget(event.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("level watcher: %v", err)
			}
		}
	}()
	return nil
}

func (l *Levels) reload(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	m, err := ReadLevel(file)
	if err != nil {
		return err
	}
	name := levelName(path)
	l.mu.Lock()
	l.levels[name] = m
	l.mu.Unlock()
	log.WithField("level", name).Debug("level loaded")
	return nil
}

func (l *Levels) forget(path string) {
	name := levelName(path)
	l.mu.Lock()
	delete(l.levels, name)
	l.mu.Unlock()
	log.WithField("level", name).Info("level removed")
}

func levelName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), levelExt)
}

// ReadLevel parses one text line per row and returns a model on a CellGrid.
func ReadLevel(reader io.Reader) (model.Model, error) {
	rows, err := read(reader)
	if err != nil {
		return model.Model{}, err
	}
	return model.NewModel(model.ToCells(swap(rows)))
}

func read(reader io.Reader) ([][]model.Piece, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	rows := make([][]model.Piece, 0)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimRight(scanner.Text(), "\r")
		if s == "" {
			continue
		}
		row := make([]model.Piece, 0, len(s))
		for col, char := range []rune(s) {
			piece, ok := model.ParsePieceRune(char)
			if !ok {
				return nil, fmt.Errorf("%w %q at line %d col %d", ErrUnknownPiece, char, line, col+1)
			}
			row = append(row, piece)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d cells, expected %d", ErrRaggedLevel, line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyLevel
	}
	return rows, nil
}

// swap turns text rows into the [x][y] grid layout.
func swap(rows [][]model.Piece) model.PieceGrid {
	grid := make(model.PieceGrid, 0, len(rows[0]))
	for c := 0; c < len(rows[0]); c++ {
		col := make([]model.Piece, 0, len(rows))
		for r := 0; r < len(rows); r++ {
			col = append(col, rows[r][c])
		}
		grid = append(grid, col)
	}
	return grid
}
