// Package config holds the settings for one clustering run. They can come
// from a JSON file, from flags, or both.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/featureclust"
	"github.com/carbocation/featureclust/cluster"
	"github.com/carbocation/featureclust/sequence"
	"github.com/carbocation/pfx"
)

// Engines that a Config may name.
const (
	EngineVsearch = "vsearch"
	EngineGreedy  = "greedy"
)

type Config struct {
	ConfigPath string `json:"-"`

	SequencesPath string  `json:"sequences"`
	TablePath     string  `json:"table"`
	PercIdentity  float64 `json:"perc_identity"`

	Engine      string `json:"engine"`
	VsearchPath string `json:"vsearch"`
	Threads     int    `json:"threads"`

	OutTablePath     string `json:"out_table"`
	OutSequencesPath string `json:"out_sequences"`
	FastaWidth       int    `json:"fasta_width"`

	// Hold the table in a dense matrix instead of the sparse default.
	DenseTable bool `json:"dense_table"`

	// Optional path where the vsearch UC records are kept as SQLite.
	UCDatabase string `json:"uc_db"`

	GoogleCredentials string `json:"gcs_credentials"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Engine:      EngineVsearch,
		VsearchPath: "vsearch",
		Threads:     1,
		FastaWidth:  sequence.DefaultWidth,
	}
}

// ParseJSONConfigFromPath overlays the JSON file at path on Default().
func ParseJSONConfigFromPath(path string) (Config, error) {
	out := Default()
	out.ConfigPath = path

	f, err := os.Open(featureclust.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	out.ExpandPaths()

	return out, nil
}

// ExpandPaths interprets ~ in every path.
func (c *Config) ExpandPaths() {
	c.ConfigPath = featureclust.ExpandHome(c.ConfigPath)
	c.SequencesPath = featureclust.ExpandHome(c.SequencesPath)
	c.TablePath = featureclust.ExpandHome(c.TablePath)
	c.VsearchPath = featureclust.ExpandHome(c.VsearchPath)
	c.OutTablePath = featureclust.ExpandHome(c.OutTablePath)
	c.OutSequencesPath = featureclust.ExpandHome(c.OutSequencesPath)
	c.UCDatabase = featureclust.ExpandHome(c.UCDatabase)
	c.GoogleCredentials = featureclust.ExpandHome(c.GoogleCredentials)
}

// Validate reports the first setting that would keep a run from starting.
func (c Config) Validate() error {
	if c.SequencesPath == "" {
		return fmt.Errorf("please provide the path to the sequences")
	}
	if c.TablePath == "" {
		return fmt.Errorf("please provide the path to the feature table")
	}
	if c.OutTablePath == "" {
		return fmt.Errorf("please provide an output path for the clustered table")
	}
	if c.OutSequencesPath == "" {
		return fmt.Errorf("please provide an output path for the clustered sequences")
	}

	if err := cluster.ValidateThreshold(c.PercIdentity); err != nil {
		return err
	}

	switch c.Engine {
	case EngineVsearch:
		if c.VsearchPath == "" {
			return fmt.Errorf("please provide the path to the vsearch binary")
		}
	case EngineGreedy:
	default:
		return fmt.Errorf("unknown engine %q: expected %s or %s", c.Engine, EngineVsearch, EngineGreedy)
	}

	if c.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", c.Threads)
	}

	return nil
}
