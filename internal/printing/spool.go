package printing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/uuid"
)

// Spooler errors.
var (
	ErrSpoolerUnavailable = errors.New("lp command not found")
	ErrNoPrinter          = errors.New("no printer specified")
)

// Job identifies a submitted print job.
type Job struct {
	ID      uuid.UUID
	Printer string
}

// Spooler submits rendered PostScript to CUPS via lp. Submission is a
// terminal hand-off: no retries, and cancellation of an in-flight job
// is the print system's concern.
type Spooler struct {
	lpPath string
}

// NewSpooler locates the lp command. The returned spooler is usable
// even when lp is missing; Submit reports ErrSpoolerUnavailable then.
func NewSpooler() *Spooler {
	path, err := exec.LookPath("lp")
	if err != nil {
		path = ""
	}
	return &Spooler{lpPath: path}
}

// Submit writes the PostScript to a temporary file and hands it to lp.
func (s *Spooler) Submit(ctx context.Context, ps string, printer string, opts Options) (Job, error) {
	if s.lpPath == "" {
		return Job{}, ErrSpoolerUnavailable
	}
	if printer == "" {
		return Job{}, ErrNoPrinter
	}

	tmp, err := os.CreateTemp("", "pagemark-*.ps")
	if err != nil {
		return Job{}, fmt.Errorf("spool: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	if _, err := tmp.WriteString(ps); err != nil {
		tmp.Close()
		return Job{}, fmt.Errorf("spool: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Job{}, fmt.Errorf("spool: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.lpPath, spoolArgs(printer, opts, name)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return Job{}, fmt.Errorf("spool: lp: %s: %w", string(out), err)
	}
	return Job{ID: uuid.New(), Printer: printer}, nil
}

func spoolArgs(printer string, opts Options, file string) []string {
	args := []string{"-d", printer}
	if opts.DoubleSided {
		args = append(args, "-o", "sides=two-sided-long-edge")
	} else {
		args = append(args, "-o", "sides=one-sided")
	}
	return append(args, file)
}
