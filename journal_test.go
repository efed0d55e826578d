package stegtext

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal(t *testing.T) {
	j, err := NewJournal(filepath.Join(t.TempDir(), "stegtext.db"))
	require.Nil(t, err)
	defer j.Close()

	e, err := j.Lookup("missing")
	require.Nil(t, err)
	assert.Nil(t, e)

	entries, err := j.Entries()
	require.Nil(t, err)
	assert.Len(t, entries, 0)

	now := time.Unix(time.Now().Unix(), 0)
	first := &Entry{
		Digest:  "AAAA",
		Source:  "BBBB",
		Path:    "/tmp/first.png",
		Layout:  Raster,
		Symbols: 6,
		Created: now,
	}
	second := &Entry{
		Digest:  "CCCC",
		Source:  "BBBB",
		Path:    "/tmp/second.png",
		Layout:  Row,
		Symbols: 1,
		Created: now.Add(time.Second),
	}
	require.Nil(t, j.Record(second))
	require.Nil(t, j.Record(first))

	e, err = j.Lookup("AAAA")
	require.Nil(t, err)
	assert.Equal(t, first, e)

	entries, err = j.Entries()
	require.Nil(t, err)
	assert.Equal(t, []Entry{*first, *second}, entries)

	// Recording the same digest again replaces the entry
	first.Path = "/tmp/renamed.png"
	require.Nil(t, j.Record(first))
	entries, err = j.Entries()
	require.Nil(t, err)
	assert.Len(t, entries, 2)

	e, err = j.Lookup("AAAA")
	require.Nil(t, err)
	assert.Equal(t, "/tmp/renamed.png", e.Path)
}

func TestDigest(t *testing.T) {
	sum, err := digest(strings.NewReader("abc"))
	require.Nil(t, err)
	assert.Equal(t, "A9993E364706816ABA3E25717850C26C9CD0D89D", sum)
}
