// Package vsearch clusters features by running the vsearch binary
// (https://github.com/torognes/vsearch) with --cluster_size and reading back
// its UC output.
package vsearch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbocation/featureclust/cluster"
	"github.com/carbocation/featureclust/sequence"
	"github.com/carbocation/pfx"
)

// DefaultPath is the binary looked up on $PATH when Engine.Path is empty.
const DefaultPath = "vsearch"

// Engine satisfies cluster.Engine.
type Engine struct {
	// Path to the vsearch binary.
	Path string

	// Threads passed to vsearch. Zero lets vsearch use every core.
	Threads int

	// Stderr, if set, also receives everything vsearch prints.
	Stderr io.Writer

	// UCDatabase, if set, is a path where the UC records are kept as a
	// SQLite database after the run. Otherwise they live in memory.
	UCDatabase string
}

// ProcessError is returned when vsearch exits unsuccessfully.
type ProcessError struct {
	Args   []string
	Err    error
	Stderr string
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func (e *Engine) Name() string {
	return "vsearch"
}

func (e *Engine) binary() string {
	if e.Path == "" {
		return DefaultPath
	}
	return e.Path
}

// Args returns the vsearch command line for one clustering run.
func (e *Engine) Args(input, centroids, uc string, percIdentity float64) []string {
	return []string{
		e.binary(),
		"--cluster_size", input,
		"--id", strconv.FormatFloat(percIdentity, 'f', -1, 64),
		"--centroids", centroids,
		"--uc", uc,
		"--qmask", "none",
		"--xsize",
		"--sizein",
		"--threads", strconv.Itoa(e.Threads),
		"--minseqlength", "1",
		"--fasta_width", "0",
	}
}

// Cluster writes annotated to a temporary FASTA file, clusters it with
// vsearch, and reads the assignment from the UC output. At a percent
// identity of 1 every feature is its own cluster and vsearch is not run.
func (e *Engine) Cluster(ctx context.Context, annotated []sequence.Record, percIdentity float64) (*cluster.Assignment, error) {
	ids, labels, err := cluster.LabelIndex(annotated)
	if err != nil {
		return nil, err
	}

	if percIdentity >= 1 {
		return cluster.Singletons(ids)
	}

	dir, err := os.MkdirTemp("", "featureclust-vsearch")
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.fasta")
	centroids := filepath.Join(dir, "centroids.fasta")
	ucPath := filepath.Join(dir, "clusters.uc")

	if err := writeInput(input, annotated); err != nil {
		return nil, err
	}

	args := e.Args(input, centroids, ucPath, percIdentity)
	log.Println("Running", strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if e.Stderr != nil {
		cmd.Stdout = e.Stderr
		cmd.Stderr = io.MultiWriter(&stderr, e.Stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		return nil, &ProcessError{Args: args, Err: err, Stderr: stderr.String()}
	}

	return e.readAssignment(ucPath, ids, labels)
}

func (e *Engine) readAssignment(ucPath string, ids []string, labels map[string]string) (*cluster.Assignment, error) {
	uc, err := OpenUC(ucPath)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer uc.Close()

	rows, err := uc.ReadAll()
	if err != nil {
		return nil, err
	}

	rows, err = ResolveLabels(rows, labels)
	if err != nil {
		return nil, err
	}

	db, err := OpenUCDB(e.UCDatabase)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := LoadUC(db, rows); err != nil {
		return nil, err
	}

	seeds, links, err := SeedMap(db)
	if err != nil {
		return nil, err
	}

	return cluster.NewAssignment(ids, seeds, links)
}

func writeInput(path string, recs []sequence.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	w := bufio.NewWriter(f)
	if err := sequence.WriteFASTA(w, recs, 0); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	return pfx.Err(f.Close())
}

// Version returns the first line vsearch prints for --version.
func Version(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}

	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return "", &ProcessError{Args: []string{path, "--version"}, Err: err, Stderr: string(out)}
	}

	line := strings.TrimSpace(string(out))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	return line, nil
}
