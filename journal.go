package stegtext

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry records a single hidden message.
type Entry struct {
	// Digest is the SHA-1 of the written carrier file
	Digest string
	// Source is the SHA-1 of the original carrier file
	Source  string
	Path    string
	Layout  Layout
	Symbols int
	Created time.Time
}

// Journal is a database of carriers written by HideFile.
type Journal struct {
	db *sql.DB
}

// NewJournal opens, creating if necessary, the journal stored in file.
func NewJournal(file string) (*Journal, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS carrier (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, source TEXT NOT NULL, path TEXT NOT NULL, layout INTEGER NOT NULL, symbols INTEGER NOT NULL, created INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{
		db: db,
	}, nil
}

// Close closes the journal.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores e, replacing any existing entry with the same digest.
func (j *Journal) Record(e *Entry) error {
	if _, err := j.db.Exec("INSERT OR REPLACE INTO carrier (sha1, source, path, layout, symbols, created) VALUES (?, ?, ?, ?, ?, ?)", e.Digest, e.Source, e.Path, int(e.Layout), e.Symbols, e.Created.Unix()); err != nil {
		return err
	}
	return nil
}

// Lookup returns the entry with the given digest or nil if there isn't one.
func (j *Journal) Lookup(digest string) (*Entry, error) {
	var e Entry
	var layout int
	var created int64
	switch err := j.db.QueryRow("SELECT sha1, source, path, layout, symbols, created FROM carrier WHERE sha1 = ?", digest).Scan(&e.Digest, &e.Source, &e.Path, &layout, &e.Symbols, &created); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		e.Layout = Layout(layout)
		e.Created = time.Unix(created, 0)
		return &e, nil
	default:
		return nil, err
	}
}

// Entries returns every entry, oldest first.
func (j *Journal) Entries() ([]Entry, error) {
	rows, err := j.db.Query("SELECT sha1, source, path, layout, symbols, created FROM carrier ORDER BY created, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var layout int
		var created int64
		if err := rows.Scan(&e.Digest, &e.Source, &e.Path, &layout, &e.Symbols, &created); err != nil {
			return nil, err
		}
		e.Layout = Layout(layout)
		e.Created = time.Unix(created, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func digest(r io.Reader) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

func digestFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return digest(f)
}
