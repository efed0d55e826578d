package stegtext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bodgit/stegtext/alphabet"
	"github.com/bodgit/stegtext/imagefile"
)

const scanWorkers = 10

var errWalkCancelled = errors.New("stegtext: walk cancelled")

// Message is a message found by Scan.
type Message struct {
	Path string
	Text string
}

func (s *Steg) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return errWalkCancelled
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			// Ignore anything that doesn't look like an image
			if _, err := imagefile.FormatFromPath(file); err != nil {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errWalkCancelled
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *Steg) revealWorker(ctx context.Context, in <-chan string, l Layout, out chan<- Message) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			text, err := s.RevealFile(file, l)
			switch {
			case err == nil:
			case errors.Is(err, imagefile.ErrDecode):
				s.logger.Printf("Unable to decode \"%s\", %s\n", file, err)
				continue
			case errors.Is(err, alphabet.ErrNoTerminator):
				s.logger.Printf("No message in \"%s\"\n", file)
				continue
			default:
				var ise *alphabet.InvalidSymbolError
				if errors.As(err, &ise) {
					s.logger.Printf("No message in \"%s\", %s\n", file, err)
					continue
				}
				// The file may have been removed or be unreadable
				var pe *os.PathError
				if errors.As(err, &pe) {
					s.logger.Printf("Unable to read \"%s\", %s\n", file, err)
					continue
				}
				errc <- err
				return
			}

			select {
			case out <- Message{Path: file, Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from errs, cancelling the rest of
// the pipeline when it arrives. It only returns once every stage has
// finished.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan reveals the messages hidden in every image beneath path using layout
// l. Images that do not contain a message are skipped. The messages are
// returned sorted by path.
func (s *Steg) Scan(ctx context.Context, path string, l Layout) ([]Message, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := s.findFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	results := make(chan Message)
	for i := 0; i < scanWorkers; i++ {
		errc, err := s.revealWorker(ctx, files, l, results)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	var messages []Message
	done := make(chan struct{})
	go func() {
		defer close(done)
		for m := range results {
			messages = append(messages, m)
		}
	}()

	err = waitForPipeline(cancelFunc, errcList...)
	close(results)
	<-done

	if err != nil {
		return nil, err
	}

	sort.Slice(messages, func(i, j int) bool { return messages[i].Path < messages[j].Path })

	return messages, nil
}
