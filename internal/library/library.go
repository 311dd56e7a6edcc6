// Package library keeps a catalog of the charts found on disk.
package library

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
	"git.lost.host/meutraa/fourk/internal/parser"
	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("beatmap not found")

// Entry is one catalogued chart.
type Entry struct {
	ID         string
	Path       string
	Index      int // position of the chart within its file
	Title      string
	Artist     string
	Creator    string
	Version    string
	Audio      string
	Taps       int
	Holds      int
	Difficulty float64
	Length     time.Duration // time of the last note
}

type Library struct {
	db         *sql.DB
	difficulty game.Difficulty // for charts that carry none
	logger     *log.Logger
}

const schema = `
create table if not exists beatmaps
  (
	  id text not null primary key,
	  path text not null,
	  idx integer not null,
	  title text,
	  artist text,
	  creator text,
	  version text,
	  audio text,
	  taps integer,
	  holds integer,
	  difficulty real,
	  length integer
  );
`

// Open opens the catalog at path. Charts scanned without a difficulty of
// their own are catalogued with difficulty.
func Open(path string, difficulty game.Difficulty, logger *log.Logger) (*Library, error) {
	if logger == nil {
		logger = log.Default()
	}
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open catalog")
	}
	if _, err := db.Exec(schema); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "unable to create catalog")
	}
	return &Library{db: db, difficulty: difficulty, logger: logger}, nil
}

func (l *Library) Close() error {
	if nil == l.db {
		return nil
	}
	return l.db.Close()
}

// hashChart identifies a chart by the file it came from and its place in it.
func hashChart(data []byte, index int) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte(strconv.Itoa(index)))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Scan walks dir and catalogues every chart it can read. Files that
// fail to parse are logged and skipped. It returns how many charts were
// stored.
func (l *Library) Scan(dir string) (int, error) {
	count := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if info.IsDir() {
			return nil
		}
		p, err := parser.ForFile(path, l.difficulty, l.logger)
		if nil != err {
			return nil
		}
		data, err := os.ReadFile(path)
		if nil != err {
			l.logger.Warn("unable to read chart", "path", path, "err", err)
			return nil
		}
		charts, err := p.Parse(path)
		if nil != err {
			l.logger.Warn("unable to parse chart", "path", path, "err", err)
			return nil
		}
		for i, c := range charts {
			audio := c.Metadata.AudioFile
			if audio != "" {
				audio = filepath.Join(filepath.Dir(path), audio)
			}
			e := Entry{
				ID:         hashChart(data, i),
				Path:       path,
				Index:      i,
				Title:      c.Metadata.Title,
				Artist:     c.Metadata.Artist,
				Creator:    c.Metadata.Creator,
				Version:    c.Metadata.Version,
				Audio:      audio,
				Taps:       c.TapCount(),
				Holds:      c.HoldCount(),
				Difficulty: float64(c.Difficulty),
				Length:     c.End(),
			}
			if err := l.Put(e); nil != err {
				return err
			}
			count++
		}
		return nil
	})
	if nil != err {
		return count, errors.Wrapf(err, "unable to scan %s", dir)
	}
	l.logger.Info("scan complete", "dir", dir, "charts", count)
	return count, nil
}

// Put stores e, replacing any entry with the same id.
func (l *Library) Put(e Entry) error {
	_, err := l.db.Exec(`insert or replace into beatmaps
		(id, path, idx, title, artist, creator, version, audio, taps, holds, difficulty, length)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Path, e.Index, e.Title, e.Artist, e.Creator, e.Version, e.Audio,
		e.Taps, e.Holds, e.Difficulty, int64(e.Length))
	return errors.Wrap(err, "unable to save beatmap")
}

const columns = "id, path, idx, title, artist, creator, version, audio, taps, holds, difficulty, length"

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var length int64
	err := row.Scan(&e.ID, &e.Path, &e.Index, &e.Title, &e.Artist, &e.Creator,
		&e.Version, &e.Audio, &e.Taps, &e.Holds, &e.Difficulty, &length)
	e.Length = time.Duration(length)
	return e, err
}

// List returns every entry ordered by artist and title.
func (l *Library) List() ([]Entry, error) {
	rows, err := l.db.Query("select " + columns + " from beatmaps order by artist, title, version")
	if nil != err {
		return nil, errors.Wrap(err, "unable to list beatmaps")
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if nil != err {
			return nil, errors.Wrap(err, "unable to read beatmap")
		}
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "unable to list beatmaps")
}

func (l *Library) Get(id string) (Entry, error) {
	e, err := scanEntry(l.db.QueryRow("select "+columns+" from beatmaps where id = ?", id))
	if err == sql.ErrNoRows {
		return Entry{}, errors.Wrap(ErrNotFound, id)
	}
	if nil != err {
		return Entry{}, errors.Wrap(err, "unable to load beatmap")
	}
	return e, nil
}
