package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Buffer        bool
	OutputDiffFix bool
	Check         bool
	Diff          bool
	View          bool
	Inline        bool
	Undo          bool
	Redo          bool
	NoColor       bool
	NoAnimation   bool
	File          string
	StateDir      string
	LookupDirs    []string
	// Args are the positional arguments; --diff takes OLD and NEW from here.
	Args []string
}

// ErrHelp is returned when -h or --help was requested.
var ErrHelp = pflag.ErrHelp

// ParseFlags parses os.Args.
func ParseFlags() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse defines and parses command-line flags using pflag.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("tidydiff", pflag.ContinueOnError)

	flags.BoolVarP(&cfg.Buffer, "buffer", "b", false, "Update buffers in Neovim without saving them to disk (changes are saved by default).")
	flags.BoolVarP(&cfg.OutputDiffFix, "output-diff-fix", "o", false, "Print the diff that corrected start and count.")
	flags.BoolVarP(&cfg.Check, "check", "c", false, "Validate diff blocks without applying them.")
	flags.BoolVarP(&cfg.Diff, "diff", "d", false, "Print the unified diff between files OLD and NEW.")
	flags.BoolVarP(&cfg.View, "view", "v", false, "Browse the first diff block in a pager.")
	flags.BoolVarP(&cfg.Inline, "inline", "i", false, "Highlight changes inside modified lines (with --view).")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	flags.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable the loading spinner and print a plain summary.")
	flags.StringVarP(&cfg.File, "file", "f", "", "Read input from this file instead of stdin or the clipboard.")
	flags.StringVar(&cfg.StateDir, "state-dir", "", "Directory for undo history (default: .tidydiff at the repository root).")
	flags.StringSliceVarP(&cfg.LookupDirs, "lookup-dir", "l", []string{}, "Directories to search for target files.")

	// Mutually exclusive history group
	flags.BoolVarP(&cfg.Undo, "undo", "u", false, "Undo the last operation.")
	flags.BoolVarP(&cfg.Redo, "redo", "r", false, "Redo the last undone operation.")

	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tidydiff [flags]")
		fmt.Fprintln(os.Stderr, "       tidydiff --diff OLD NEW")
		fmt.Fprintln(os.Stderr, "\nApply unified diffs from Markdown read from a file, stdin (pipe) or the clipboard.")
		fmt.Fprintln(os.Stderr, "\nExample: pbpaste | tidydiff --check")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	cfg.Args = flags.Args()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Undo && c.Redo {
		return errors.New("--undo and --redo are mutually exclusive")
	}

	modes := 0
	for _, set := range []bool{c.OutputDiffFix, c.Check, c.Diff, c.View, c.Undo || c.Redo} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return errors.New("--output-diff-fix, --check, --diff, --view and --undo/--redo are mutually exclusive")
	}

	if c.Diff && len(c.Args) != 2 {
		return fmt.Errorf("--diff takes exactly two files, got %d", len(c.Args))
	}
	if !c.Diff && len(c.Args) > 0 {
		return fmt.Errorf("unexpected argument %q", c.Args[0])
	}
	if c.Inline && !c.View {
		return errors.New("--inline requires --view")
	}
	return nil
}
