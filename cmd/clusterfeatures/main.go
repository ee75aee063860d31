// clusterfeatures clusters the features of an abundance table by sequence
// identity and collapses the table to one row per cluster.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"cloud.google.com/go/storage"
	"github.com/carbocation/featureclust"
	"github.com/carbocation/featureclust/cluster"
	"github.com/carbocation/featureclust/compileinfo"
	"github.com/carbocation/featureclust/config"
	"github.com/carbocation/featureclust/greedy"
	"github.com/carbocation/featureclust/sequence"
	"github.com/carbocation/featureclust/table"
	"github.com/carbocation/featureclust/vsearch"
)

func main() {
	compileinfo.PrintToStdErr()

	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Println(err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalln(err)
	}

	log.Println("Quitting")
}

// parseFlags builds the run configuration. Values from -config are read
// first and any flag given on the command line replaces them.
func parseFlags(fs *flag.FlagSet, args []string) (config.Config, error) {
	flagged := config.Default()
	var configPath string

	fs.StringVar(&configPath, "config", "", "Optional path to a JSON config file. Flags given explicitly override it.")
	fs.StringVar(&flagged.SequencesPath, "sequences", "", "FASTA file with one sequence per feature. May be compressed or on gs://")
	fs.StringVar(&flagged.TablePath, "table", "", "Tab-delimited feature table (features are rows, samples are columns). May be compressed or on gs://")
	fs.Float64Var(&flagged.PercIdentity, "perc-identity", 0, "Percent identity, in (0, 1], at which features are clustered.")
	fs.StringVar(&flagged.Engine, "engine", flagged.Engine, "Clustering engine: vsearch or greedy.")
	fs.StringVar(&flagged.VsearchPath, "vsearch", flagged.VsearchPath, "Path to the vsearch binary.")
	fs.IntVar(&flagged.Threads, "threads", flagged.Threads, "Number of threads vsearch may use. 0 means all cores.")
	fs.StringVar(&flagged.OutTablePath, "out-table", "", "Where the clustered table is written. May be on gs://")
	fs.StringVar(&flagged.OutSequencesPath, "out-sequences", "", "Where the cluster representative sequences are written. May be on gs://")
	fs.IntVar(&flagged.FastaWidth, "fasta-width", flagged.FastaWidth, "Line width of the output FASTA. 0 writes each sequence on one line.")
	fs.BoolVar(&flagged.DenseTable, "dense", false, "Hold the table in a dense matrix. Faster for small, well-populated tables.")
	fs.StringVar(&flagged.UCDatabase, "uc-db", "", "Optional path at which to keep the vsearch cluster records as a SQLite database.")
	fs.StringVar(&flagged.GoogleCredentials, "gcs-credentials", "", "Optional service account JSON file for gs:// paths. Defaults to application default credentials.")

	if err := fs.Parse(args); err != nil {
		return flagged, err
	}

	cfg := flagged
	if configPath != "" {
		fromFile, err := config.ParseJSONConfigFromPath(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = fromFile

		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "sequences":
				cfg.SequencesPath = flagged.SequencesPath
			case "table":
				cfg.TablePath = flagged.TablePath
			case "perc-identity":
				cfg.PercIdentity = flagged.PercIdentity
			case "engine":
				cfg.Engine = flagged.Engine
			case "vsearch":
				cfg.VsearchPath = flagged.VsearchPath
			case "threads":
				cfg.Threads = flagged.Threads
			case "out-table":
				cfg.OutTablePath = flagged.OutTablePath
			case "out-sequences":
				cfg.OutSequencesPath = flagged.OutSequencesPath
			case "fasta-width":
				cfg.FastaWidth = flagged.FastaWidth
			case "dense":
				cfg.DenseTable = flagged.DenseTable
			case "uc-db":
				cfg.UCDatabase = flagged.UCDatabase
			case "gcs-credentials":
				cfg.GoogleCredentials = flagged.GoogleCredentials
			}
		})
	}

	cfg.ExpandPaths()

	return cfg, cfg.Validate()
}

func newEngine(cfg config.Config) (cluster.Engine, error) {
	switch cfg.Engine {
	case config.EngineVsearch:
		return &vsearch.Engine{
			Path:       cfg.VsearchPath,
			Threads:    cfg.Threads,
			Stderr:     os.Stderr,
			UCDatabase: cfg.UCDatabase,
		}, nil
	case config.EngineGreedy:
		return greedy.Engine{}, nil
	}

	return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
}

func run(ctx context.Context, cfg config.Config) error {
	client, err := featureclust.NewStorageClient(ctx, cfg.GoogleCredentials,
		cfg.SequencesPath, cfg.TablePath, cfg.OutTablePath, cfg.OutSequencesPath)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	if ve, ok := engine.(*vsearch.Engine); ok {
		version, err := vsearch.Version(ctx, ve.Path)
		if err != nil {
			return err
		}
		log.Println("Using", version)
	}

	seqs, err := readSequences(cfg.SequencesPath, client)
	if err != nil {
		return err
	}
	log.Printf("Read %d sequences from %s\n", len(seqs), cfg.SequencesPath)

	tbl, err := readTable(cfg.TablePath, client)
	if err != nil {
		return err
	}
	log.Printf("Read %d features in %d samples from %s\n", len(tbl.RowIDs()), len(tbl.ColumnIDs()), cfg.TablePath)

	if cfg.DenseTable {
		dense, err := table.ToDense(tbl)
		if err != nil {
			return err
		}
		tbl = dense
	}

	clustered, reps, assignment, err := cluster.ClusterFeaturesDenovo(ctx, seqs, tbl, cfg.PercIdentity, engine)
	if err != nil {
		return err
	}

	summary, err := cluster.Summarize(assignment)
	if err != nil {
		return err
	}
	log.Printf("Clustered at %v with %s: %s\n", cfg.PercIdentity, cluster.EngineName(engine), summary)

	if err := writeTable(ctx, cfg.OutTablePath, client, clustered); err != nil {
		return err
	}
	log.Println("Wrote", cfg.OutTablePath)

	if err := writeSequences(ctx, cfg.OutSequencesPath, client, reps, cfg.FastaWidth); err != nil {
		return err
	}
	log.Println("Wrote", cfg.OutSequencesPath)

	return nil
}

func readSequences(path string, client *storage.Client) ([]sequence.Record, error) {
	rc, err := featureclust.OpenInput(path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return sequence.ReadFASTA(rc)
}

func readTable(path string, client *storage.Client) (table.Table, error) {
	rc, err := featureclust.OpenInput(path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return table.ReadTSV(rc)
}

func writeTable(ctx context.Context, path string, client *storage.Client, t table.Table) error {
	wc, err := featureclust.CreateOutput(ctx, path, client)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(wc)
	if err := table.WriteTSV(w, t); err != nil {
		wc.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		wc.Close()
		return err
	}

	return wc.Close()
}

func writeSequences(ctx context.Context, path string, client *storage.Client, recs []sequence.Record, width int) error {
	wc, err := featureclust.CreateOutput(ctx, path, client)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(wc)
	if err := sequence.WriteFASTA(w, recs, width); err != nil {
		wc.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		wc.Close()
		return err
	}

	return wc.Close()
}
