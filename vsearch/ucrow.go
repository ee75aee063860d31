package vsearch

// Map columns in the UC file to their positions
const (
	RecordType int = iota
	ClusterNumber
	SizeOrLength
	Identity
	Strand
	QueryStart
	SeedStart
	Alignment
	QueryLabel
	TargetLabel
)

// Record types that can appear in the first column of a UC file.
const (
	RecordSeed    = "S"
	RecordHit     = "H"
	RecordCluster = "C"
)

type UCRow struct {
	Type          string
	ClusterNumber int
	Query         string // As vsearch wrote it until resolved
	Target        string // "*" for seeds
	Line          int    // 1-based line in the UC file
}
