package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bodgit/stegtext"
	"github.com/bodgit/stegtext/imagefile"
	"github.com/bodgit/stegtext/preview"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/unicode/norm"
)

const defaultDB = "stegtext.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}
	return logger
}

func layout(c *cli.Context) (stegtext.Layout, error) {
	l, err := stegtext.ParseLayout(c.String("layout"))
	if err != nil {
		return l, cli.NewExitError(err, 1)
	}
	return l, nil
}

func openJournal(c *cli.Context) (*stegtext.Steg, func(), error) {
	j, err := stegtext.NewJournal(c.String("db"))
	if err != nil {
		return nil, nil, cli.NewExitError(err, 1)
	}
	return stegtext.New(j, newLogger(c)), func() { j.Close() }, nil
}

// readMessage reads a single line of text from r.
func readMessage(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return norm.NFC.String(strings.TrimRight(line, "\r\n")), nil
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "stegtext"
	app.Usage = "Hide text in the least significant bits of an image"
	app.Version = "1.0.0"
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"STEGTEXT_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to journal database",
		},
		&cli.StringFlag{
			Name:    "layout",
			Aliases: []string{"l"},
			EnvVars: []string{"STEGTEXT_LAYOUT"},
			Value:   stegtext.Row.String(),
			Usage:   "pixel order, either \"row\" or \"raster\"",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "hide",
			Usage:       "Hide a message in an image",
			Description: "The message is read from standard input unless --message is given. Only letters and spaces can be hidden and the output must be a PNG, BMP or TIFF file.",
			ArgsUsage:   "SOURCE DESTINATION",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "message",
					Aliases: []string{"m"},
					Usage:   "message to hide",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, err := layout(c)
				if err != nil {
					return err
				}

				text := norm.NFC.String(c.String("message"))
				if !c.IsSet("message") {
					fmt.Fprintln(c.App.ErrWriter, "Please enter the text to hide")
					if text, err = readMessage(os.Stdin); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				s, closer, err := openJournal(c)
				if err != nil {
					return err
				}
				defer closer()

				if err := s.HideFile(c.Args().Get(0), c.Args().Get(1), text, l); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "reveal",
			Usage:       "Reveal the message hidden in an image",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, err := layout(c)
				if err != nil {
					return err
				}

				text, err := stegtext.New(nil, newLogger(c)).RevealFile(c.Args().First(), l)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Fprintln(c.App.Writer, text)

				return nil
			},
		},
		{
			Name:        "capacity",
			Usage:       "Print the longest message an image can hold",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, err := layout(c)
				if err != nil {
					return err
				}

				n, err := stegtext.New(nil, newLogger(c)).CapacityFile(c.Args().First(), l)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Fprintln(c.App.Writer, n)

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Reveal the messages hidden in every image in a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, err := layout(c)
				if err != nil {
					return err
				}

				messages, err := stegtext.New(nil, newLogger(c)).Scan(context.Background(), c.Args().First(), l)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, m := range messages {
					fmt.Fprintf(c.App.Writer, "%s: %s\n", m.Path, m.Text)
				}

				return nil
			},
		},
		{
			Name:        "check",
			Usage:       "Check whether an image was written by the hide command",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, closer, err := openJournal(c)
				if err != nil {
					return err
				}
				defer closer()

				e, err := s.Check(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if e == nil {
					return cli.NewExitError(fmt.Sprintf("%s: not found in journal", c.Args().First()), 1)
				}
				fmt.Fprintf(c.App.Writer, "%s: %d symbols, %s layout, written %s\n", e.Path, e.Symbols, e.Layout, e.Created.Format(time.RFC3339))

				return nil
			},
		},
		{
			Name:        "history",
			Usage:       "List every image written by the hide command",
			Description: "",
			Action: func(c *cli.Context) error {
				s, closer, err := openJournal(c)
				if err != nil {
					return err
				}
				defer closer()

				entries, err := s.History()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				w := tabwriter.NewWriter(c.App.Writer, 0, 8, 1, ' ', 0)
				fmt.Fprintln(w, "CREATED\tSHA1\tLAYOUT\tSYMBOLS\tPATH")
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.Created.Format(time.RFC3339), e.Digest, e.Layout, e.Symbols, e.Path)
				}

				return w.Flush()
			},
		},
		{
			Name:        "preview",
			Usage:       "Render the least significant bits of an image as a GIF",
			Description: "",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "bits",
					Aliases: []string{"b"},
					Value:   2,
					Usage:   "number of low bits to render",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				bits := c.Int("bits")
				if err := preview.ValidBits(bits); err != nil {
					return cli.NewExitError(err, 1)
				}

				m, _, err := imagefile.Read(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				output := c.Args().Get(1)
				f, err := os.Create(output)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := preview.Encode(f, m, bits); err != nil {
					f.Close()
					os.Remove(output)
					return cli.NewExitError(err, 1)
				}

				if err := f.Close(); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
