package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/stegtext/imagefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestReadMessage(t *testing.T) {
	tables := []struct {
		input, text string
	}{
		{"hello world\n", "hello world"},
		{"crlf\r\nsecond line\n", "crlf"},
		{"no newline", "no newline"},
		{"", ""},
		{"café\n", "café"},
	}

	for _, table := range tables {
		text, err := readMessage(strings.NewReader(table.input))
		require.Nil(t, err)
		assert.Equal(t, table.text, text)
	}
}

func writeCover(t *testing.T, file string) {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.SetNRGBA(x, y, color.NRGBA{0xfd, 0xfd, 0xfd, 0xff})
		}
	}
	require.Nil(t, imagefile.Write(file, m))
}

// run executes the app with args, returning anything written to standard
// output and the error, if any, without exiting.
func run(t *testing.T, cwd string, args ...string) (string, error) {
	t.Helper()
	app := newApp(cwd)
	out := new(bytes.Buffer)
	app.Writer = out
	app.ErrWriter = new(bytes.Buffer)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"stegtext"}, args...))
	return out.String(), err
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	src := filepath.Join(dir, "cover.png")
	writeCover(t, src)

	tables := []struct {
		name string
		args []string
		out  string
		ok   bool
	}{
		{"hide raster", []string{"--db", db, "--layout", "raster", "hide", "-m", "hello world", src, filepath.Join(dir, "raster.png")}, "", true},
		{"reveal raster", []string{"--layout", "raster", "reveal", filepath.Join(dir, "raster.png")}, "HELLO WORLD\n", true},
		{"reveal row", []string{"--layout", "row", "reveal", filepath.Join(dir, "raster.png")}, "", false},
		{"hide row", []string{"--db", db, "hide", "--message", "hi", src, filepath.Join(dir, "row.bmp")}, "", true},
		{"reveal default", []string{"reveal", filepath.Join(dir, "row.bmp")}, "HI\n", true},
		{"capacity raster", []string{"-l", "raster", "capacity", src}, "63\n", true},
		{"capacity row", []string{"capacity", src}, "7\n", true},
		{"too long", []string{"--db", db, "hide", "-m", "far too long", src, filepath.Join(dir, "long.png")}, "", false},
		{"invalid character", []string{"--db", db, "hide", "-m", "hello!", src, filepath.Join(dir, "bad.png")}, "", false},
		{"lossy output", []string{"--db", db, "hide", "-m", "hi", src, filepath.Join(dir, "out.jpg")}, "", false},
		{"invalid layout", []string{"--layout", "spiral", "reveal", filepath.Join(dir, "raster.png")}, "", false},
		{"scan", []string{"--layout", "raster", "scan", dir}, filepath.Join(dir, "raster.png") + ": HELLO WORLD\n" + filepath.Join(dir, "row.bmp") + ": HI\n", true},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			out, err := run(t, dir, table.args...)
			if table.ok {
				require.Nil(t, err)
			} else {
				assert.NotNil(t, err)
			}
			assert.Equal(t, table.out, out)
		})
	}

	_, err := os.Stat(filepath.Join(dir, "long.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "out.jpg"))
	assert.True(t, os.IsNotExist(err))

	out, err := run(t, dir, "--db", db, "check", filepath.Join(dir, "raster.png"))
	require.Nil(t, err)
	assert.Contains(t, out, "12 symbols, raster layout")

	out, err = run(t, dir, "--db", db, "history")
	require.Nil(t, err)
	assert.Contains(t, out, filepath.Join(dir, "raster.png"))
	assert.Contains(t, out, filepath.Join(dir, "row.bmp"))

	_, err = run(t, dir, "--db", db, "check", src)
	assert.NotNil(t, err)
}

func TestAppEnvironment(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "env.db")
	src := filepath.Join(dir, "cover.png")
	dst := filepath.Join(dir, "hidden.png")
	writeCover(t, src)

	t.Setenv("STEGTEXT_LAYOUT", "raster")
	t.Setenv("STEGTEXT_DB", db)

	_, err := run(t, dir, "hide", "-m", "hello world", src, dst)
	require.Nil(t, err)

	_, err = os.Stat(db)
	assert.Nil(t, err)
	_, err = os.Stat(filepath.Join(dir, defaultDB))
	assert.True(t, os.IsNotExist(err))

	out, err := run(t, dir, "reveal", dst)
	require.Nil(t, err)
	assert.Equal(t, "HELLO WORLD\n", out)

	// The flag takes precedence over the environment
	_, err = run(t, dir, "--layout", "row", "reveal", dst)
	assert.NotNil(t, err)

	t.Setenv("STEGTEXT_LAYOUT", "spiral")
	_, err = run(t, dir, "reveal", dst)
	assert.NotNil(t, err)
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cover.png")
	writeCover(t, src)

	tables := []struct {
		name string
		bits string
		ok   bool
	}{
		{"zero", "0", false},
		{"too many", "9", false},
		{"two", "2", true},
		{"eight", "8", true},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			output := filepath.Join(dir, table.name+".gif")
			_, err := run(t, dir, "preview", "--bits", table.bits, src, output)

			_, serr := os.Stat(output)
			if table.ok {
				require.Nil(t, err)
				assert.Nil(t, serr)
			} else {
				assert.NotNil(t, err)
				assert.True(t, os.IsNotExist(serr))
			}
		})
	}
}
