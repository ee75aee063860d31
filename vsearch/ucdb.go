package vsearch

import (
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

const ucSchema = `
CREATE TABLE IF NOT EXISTS feature_cluster_map (
	feature_id  TEXT PRIMARY KEY,
	cluster_id  INTEGER NOT NULL,
	record_type TEXT NOT NULL,
	line        INTEGER NOT NULL
)`

// OpenUCDB opens (or creates) the SQLite database that holds UC records. An
// empty path gives a private in-memory database.
func OpenUCDB(path string) (*sqlx.DB, error) {
	dsn := ":memory:"
	if path != "" {
		// URI filenames have to begin with 'file:'; see
		// https://www.sqlite.org/c3ref/open.html
		dsn = path
		if !strings.HasPrefix(dsn, "file:") {
			dsn = "file:" + dsn
		}
	}

	db, err := connect(dsn)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Every connection to ":memory:" is a different database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(ucSchema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return db, nil
}

// LoadUC stores rows in the feature_cluster_map table, replacing whatever it
// held. A feature that appears twice is an error.
func LoadUC(db *sqlx.DB, rows []UCRow) error {
	tx, err := db.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM feature_cluster_map"); err != nil {
		return pfx.Err(err)
	}

	stmt, err := tx.Preparex("INSERT INTO feature_cluster_map (feature_id, cluster_id, record_type, line) VALUES (?, ?, ?, ?)")
	if err != nil {
		return pfx.Err(err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.Query, row.ClusterNumber, row.Type, row.Line); err != nil {
			return fmt.Errorf("UC line %d (%s): %w", row.Line, row.Query, err)
		}
	}

	return pfx.Err(tx.Commit())
}

type featureSeed struct {
	FeatureID string `db:"feature_id"`
	SeedID    string `db:"seed_id"`
}

// SeedMap returns the seeds in the order vsearch reported them and a map of
// every hit to the seed of its cluster.
func SeedMap(db *sqlx.DB) (seeds []string, links map[string]string, err error) {
	if err := db.Select(&seeds, "SELECT feature_id FROM feature_cluster_map WHERE record_type = 'S' ORDER BY line"); err != nil {
		return nil, nil, pfx.Err(err)
	}

	var hits []featureSeed
	if err := db.Select(&hits, `
SELECT m.feature_id AS feature_id, COALESCE(s.feature_id, '') AS seed_id
FROM feature_cluster_map m
LEFT JOIN feature_cluster_map s ON s.cluster_id = m.cluster_id AND s.record_type = 'S'
WHERE m.record_type = 'H'
ORDER BY m.line`); err != nil {
		return nil, nil, pfx.Err(err)
	}

	links = make(map[string]string, len(hits))
	for _, hit := range hits {
		if hit.SeedID == "" {
			return nil, nil, fmt.Errorf("%s was assigned to a cluster without a seed", hit.FeatureID)
		}
		links[hit.FeatureID] = hit.SeedID
	}

	return seeds, links, nil
}
