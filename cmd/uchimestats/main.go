// uchimestats prints a vsearch --uchimeout file as a metadata table indexed
// by feature-id.
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/carbocation/featureclust"
	"github.com/carbocation/featureclust/compileinfo"
	"github.com/carbocation/featureclust/uchime"
)

func main() {
	compileinfo.PrintToStdErr()

	var path, credentials string
	flag.StringVar(&path, "file", "", "Path to a uchime stats file. May be compressed or on gs://")
	flag.StringVar(&credentials, "gcs-credentials", "", "Optional service account JSON file for gs:// paths.")
	flag.Parse()

	if path == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(context.Background(), os.Stdout, path, credentials); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, w io.Writer, path, credentials string) error {
	client, err := featureclust.NewStorageClient(ctx, credentials, path)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	rc, err := featureclust.OpenInput(path, client)
	if err != nil {
		return err
	}
	defer rc.Close()

	m, err := uchime.Read(rc)
	if err != nil {
		return err
	}
	log.Printf("Read %d records from %s\n", m.Len(), path)

	bw := bufio.NewWriter(w)
	if err := uchime.WriteTSV(bw, m); err != nil {
		return err
	}

	return bw.Flush()
}
