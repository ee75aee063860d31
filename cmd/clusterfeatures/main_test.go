package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/featureclust/config"
	"github.com/carbocation/featureclust/greedy"
	"github.com/carbocation/featureclust/vsearch"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("clusterfeatures", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags(newFlagSet(), []string{
		"-sequences", "seqs.fasta",
		"-table", "table.tsv",
		"-perc-identity", "0.97",
		"-out-table", "out.tsv",
		"-out-sequences", "out.fasta",
		"-engine", "greedy",
		"-dense",
	})
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.DenseTable {
		t.Fatalf("Expected -dense to select the dense table")
	}

	if cfg.PercIdentity != 0.97 || cfg.Engine != config.EngineGreedy || cfg.FastaWidth != config.Default().FastaWidth {
		t.Fatalf("Unexpected config %+v", cfg)
	}
}

func TestParseFlagsConfigFileAndOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	contents := `{"sequences": "a.fasta", "table": "a.tsv", "out_table": "b.tsv", "out_sequences": "b.fasta", "perc_identity": 0.99, "threads": 4}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parseFlags(newFlagSet(), []string{"-config", path, "-perc-identity", "0.9", "-dense"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.PercIdentity != 0.9 {
		t.Fatalf("Expected the flag to override the file, got %v", cfg.PercIdentity)
	}
	if !cfg.DenseTable {
		t.Fatalf("Expected -dense to override the file")
	}
	if cfg.Threads != 4 || cfg.SequencesPath != "a.fasta" {
		t.Fatalf("Expected values from the file to survive, got %+v", cfg)
	}
}

func TestParseFlagsInvalid(t *testing.T) {
	if _, err := parseFlags(newFlagSet(), []string{"-sequences", "seqs.fasta"}); err == nil {
		t.Fatalf("Expected an error when required flags are missing")
	}
}

func TestNewEngine(t *testing.T) {
	cfg := config.Default()

	e, err := newEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.(*vsearch.Engine); !ok {
		t.Fatalf("Expected the vsearch engine by default, got %T", e)
	}

	cfg.Engine = config.EngineGreedy
	if e, err = newEngine(cfg); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.(greedy.Engine); !ok {
		t.Fatalf("Expected the greedy engine, got %T", e)
	}
}

func TestRunGreedy(t *testing.T) {
	seqs := ">feature1 first\nGCTAAAGACAATTACATAACATACACGTCAGCACGAAACTTGTTGGCCCAGTGTGAATCGCTTAAGGGTTAAGTAAGTGTGATGCATACGCCTTTACTTG\n" +
		">feature2\nCTGTGTCCACCCCATCGGACTGGCATTTTTATTACACTCAGAAACAGAACTCGGGTAATTTTGACAGGTCACGCAGAGGCGCGCCCTCCTGAAGTGCGTG\n" +
		">feature3\nGCTAAAGACAATTACATAACATACACGTCATCACGAAACTTGTTGGCCCAGTGTGAATCGCTTAAGGGTTAAGTAAGTGTGATGCATACGCCTTTACTTG\n" +
		">feature4\nGCTAAAGACAATTACATAACATACACGTCAGCACGAAACTTGTTGGCCCAGTGTGAATCGGTTAAGGGTTAAGTACGTGTGATGCATACGCCTTTACTTG\n"
	tbl := "# Constructed from biom file\n#OTU ID\tsample1\tsample2\tsample3\n" +
		"feature1\t100\t101\t103\n" +
		"feature2\t1\t1\t2\n" +
		"feature3\t4\t5\t6\n" +
		"feature4\t7\t8\t9\n"

	for _, dense := range []bool{false, true} {
		dir := t.TempDir()

		cfg := config.Default()
		cfg.Engine = config.EngineGreedy
		cfg.PercIdentity = 0.97
		cfg.DenseTable = dense
		cfg.SequencesPath = filepath.Join(dir, "seqs.fasta")
		cfg.TablePath = filepath.Join(dir, "table.tsv")
		cfg.OutTablePath = filepath.Join(dir, "out.tsv")
		cfg.OutSequencesPath = filepath.Join(dir, "out.fasta")

		if err := os.WriteFile(cfg.SequencesPath, []byte(seqs), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(cfg.TablePath, []byte(tbl), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := run(context.Background(), cfg); err != nil {
			t.Fatalf("dense=%v: %v", dense, err)
		}

		outTable, err := os.ReadFile(cfg.OutTablePath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(outTable), "feature1\t111\t114\t118") || !strings.Contains(string(outTable), "feature2\t1\t1\t2") {
			t.Fatalf("dense=%v: expected feature3 and feature4 to be folded into feature1, got:\n%s", dense, outTable)
		}

		outSeqs, err := os.ReadFile(cfg.OutSequencesPath)
		if err != nil {
			t.Fatal(err)
		}
		if n := strings.Count(string(outSeqs), ">"); n != 2 {
			t.Fatalf("dense=%v: expected 2 representative sequences, got %d:\n%s", dense, n, outSeqs)
		}
	}
}
