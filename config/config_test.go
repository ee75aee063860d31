package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/featureclust/cluster"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func validConfig() Config {
	c := Default()
	c.SequencesPath = "seqs.fasta"
	c.TablePath = "table.tsv"
	c.OutTablePath = "out.tsv"
	c.OutSequencesPath = "out.fasta"
	c.PercIdentity = 0.97
	return c
}

func TestParseJSONConfigFromPath(t *testing.T) {
	path := writeConfig(t, `{
	"sequences": "gs://bucket/seqs.fasta.gz",
	"table": "/data/table.tsv",
	"perc_identity": 0.99,
	"engine": "greedy",
	"threads": 8
}`)

	c, err := ParseJSONConfigFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.SequencesPath != "gs://bucket/seqs.fasta.gz" || c.TablePath != "/data/table.tsv" {
		t.Fatalf("Unexpected paths in %+v", c)
	}
	if c.PercIdentity != 0.99 || c.Engine != EngineGreedy || c.Threads != 8 {
		t.Fatalf("Unexpected settings in %+v", c)
	}

	// Unset fields keep their defaults
	if c.VsearchPath != "vsearch" || c.FastaWidth != Default().FastaWidth {
		t.Fatalf("Expected defaults to survive, got %+v", c)
	}
	if c.ConfigPath != path {
		t.Fatalf("Expected ConfigPath %s, got %s", path, c.ConfigPath)
	}
}

func TestParseJSONConfigFromPathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip(err)
	}

	c, err := ParseJSONConfigFromPath(writeConfig(t, `{"uc_db": "~/uc.sqlite"}`))
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasSuffix(c.UCDatabase, "uc.sqlite") || strings.HasPrefix(c.UCDatabase, "~") {
		t.Fatalf("Expected ~ to be expanded under %s, got %s", home, c.UCDatabase)
	}
}

func TestParseJSONConfigFromPathErrors(t *testing.T) {
	cases := []struct {
		Name     string
		Contents string
	}{
		{"syntax", `{"table": `},
		{"unknown field", `{"tabel": "x"}`},
		{"wrong type", `{"threads": "eight"}`},
	}

	for _, c := range cases {
		if _, err := ParseJSONConfigFromPath(writeConfig(t, c.Contents)); err == nil {
			t.Fatalf("%s: expected an error", c.Name)
		}
	}

	if _, err := ParseJSONConfigFromPath(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("Expected an error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		Name   string
		Modify func(*Config)
	}{
		{"no sequences", func(c *Config) { c.SequencesPath = "" }},
		{"no table", func(c *Config) { c.TablePath = "" }},
		{"no out table", func(c *Config) { c.OutTablePath = "" }},
		{"no out sequences", func(c *Config) { c.OutSequencesPath = "" }},
		{"unknown engine", func(c *Config) { c.Engine = "usearch" }},
		{"no vsearch", func(c *Config) { c.VsearchPath = "" }},
		{"negative threads", func(c *Config) { c.Threads = -1 }},
	}

	for _, c := range cases {
		cfg := validConfig()
		c.Modify(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected an error", c.Name)
		}
	}

	for _, p := range []float64{0, -0.5, 1.5} {
		cfg := validConfig()
		cfg.PercIdentity = p
		if err := cfg.Validate(); !errors.Is(err, cluster.ErrInvalidThreshold) {
			t.Fatalf("%v: expected ErrInvalidThreshold, got %v", p, err)
		}
	}

	// The greedy engine does not need vsearch
	cfg := validConfig()
	cfg.Engine = EngineGreedy
	cfg.VsearchPath = ""
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
}
