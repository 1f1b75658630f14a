package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrCommand = errors.New("command failed")

const clearScreen = "\033[H\033[2J"

type RunOptions struct {
	// Interactive prints the table on start and a prompt before every line.
	Interactive bool
	// Quiet only prints failures and the output of show and help.
	Quiet bool
	// KeepGoing does not stop on the first failed command.
	KeepGoing bool
}

// Run reads command lines from r until the end of input or until exit is
// executed. Blank lines and lines starting with # are skipped.
func Run(s *Session, r io.Reader, w io.Writer, opts RunOptions) error {
	var (
		scan   = bufio.NewScanner(r)
		failed int
		lino   int
	)
	if opts.Interactive {
		fmt.Fprintln(w, s.Show())
		fmt.Fprint(w, prompt)
	}
	for scan.Scan() {
		lino++
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			if opts.Interactive {
				fmt.Fprint(w, prompt)
			}
			continue
		}
		if opts.Interactive && s.Config().ClearConsole {
			fmt.Fprint(w, clearScreen)
		}
		res := s.Exec(line)
		if !opts.Quiet || !res.Ok || res.Message == "" {
			if str := res.String(); str != "" {
				fmt.Fprintln(w, str)
			}
		}
		if s.Done() {
			break
		}
		if !res.Ok {
			failed++
			if !opts.KeepGoing && !opts.Interactive {
				return fmt.Errorf("line %d: %s: %w", lino, line, ErrCommand)
			}
		}
		if opts.Interactive {
			fmt.Fprint(w, prompt)
		}
	}
	if err := scan.Err(); err != nil {
		return err
	}
	if failed > 0 && !opts.Interactive {
		return fmt.Errorf("%d line(s) failed: %w", failed, ErrCommand)
	}
	return nil
}

const prompt = "> "
