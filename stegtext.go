/*
Package stegtext hides short text messages in the least significant bits of
an image.

Each character of the message is encoded as a symbol between 1 and 27,
followed by a terminating zero, and each symbol is stored in the lowest two
bits of the red, green and blue channels of one pixel. Pixels are visited in
the order given by a Layout, the default being the first row of the image
from left to right.
*/
package stegtext

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/bodgit/stegtext/alphabet"
	"github.com/bodgit/stegtext/imagefile"
)

var errNoJournal = errors.New("stegtext: no journal")

// Steg hides and reveals messages in image files, recording each carrier
// it writes in an optional Journal.
type Steg struct {
	journal *Journal
	logger  *log.Logger
}

// New returns a Steg using the given journal, which may be nil, and logger.
func New(journal *Journal, logger *log.Logger) *Steg {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Steg{
		journal: journal,
		logger:  logger,
	}
}

func readCarrier(file string) (*Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	tr := io.TeeReader(f, h)
	m, _, err := imagefile.Decode(tr)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", file, err)
	}
	// Make sure the digest covers the whole file
	if _, err := io.Copy(ioutil.Discard, tr); err != nil {
		return nil, "", err
	}

	return NewCarrier(m), fmt.Sprintf("%X", h.Sum(nil)), nil
}

// HideFile hides text in the image read from src and writes the result to
// dst, which must have the extension of a lossless format. src and dst may
// be the same file. If a journal is in use the entry is recorded after dst
// has been written, so dst is left in place if recording fails.
func (s *Steg) HideFile(src, dst, text string, l Layout) error {
	if err := alphabet.Valid(text); err != nil {
		return err
	}

	format, err := imagefile.FormatFromPath(dst)
	if err != nil {
		return err
	}
	if err := imagefile.Writable(format); err != nil {
		return err
	}

	c, source, err := readCarrier(src)
	if err != nil {
		return err
	}

	if err := Hide(c, text, l); err != nil {
		return err
	}

	if err := imagefile.Write(dst, c); err != nil {
		return err
	}
	s.logger.Printf("Hid %d characters in \"%s\" using %s layout\n", len(text), dst, l)

	if s.journal == nil {
		return nil
	}

	sum, err := digestFile(dst)
	if err != nil {
		return err
	}

	return s.journal.Record(&Entry{
		Digest:  sum,
		Source:  source,
		Path:    dst,
		Layout:  l,
		Symbols: len(text) + 1,
		Created: time.Now(),
	})
}

// RevealFile returns the message hidden in the image file.
func (s *Steg) RevealFile(file string, l Layout) (string, error) {
	c, _, err := readCarrier(file)
	if err != nil {
		return "", err
	}
	return Reveal(c, l)
}

// CapacityFile returns the length of the longest message the image file
// can hold.
func (s *Steg) CapacityFile(file string, l Layout) (int, error) {
	c, _, err := readCarrier(file)
	if err != nil {
		return 0, err
	}
	return MaxMessageLength(c, l), nil
}

// Check returns the journal entry for the image file or nil if the file
// was not written by HideFile.
func (s *Steg) Check(file string) (*Entry, error) {
	if s.journal == nil {
		return nil, errNoJournal
	}

	sum, err := digestFile(file)
	if err != nil {
		return nil, err
	}

	return s.journal.Lookup(sum)
}

// History returns every entry in the journal.
func (s *Steg) History() ([]Entry, error) {
	if s.journal == nil {
		return nil, errNoJournal
	}
	return s.journal.Entries()
}
