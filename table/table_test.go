package table

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

var (
	testRows = []string{"feature1", "feature2", "feature3", "feature4"}
	testCols = []string{"sample1", "sample2", "sample3"}
	testData = [][]float64{
		{100, 101, 103},
		{1, 1, 2},
		{4, 5, 6},
		{7, 8, 9},
	}
)

func TestSparseAndDenseAgree(t *testing.T) {
	s, err := NewSparse(testRows, testCols, testData)
	if err != nil {
		t.Fatal(err)
	}
	d, err := NewDense(testRows, testCols, testData)
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(s, d) || !Equal(d, s) {
		t.Fatalf("Sparse and dense tables built from the same rows differ")
	}

	for i, expected := range []float64{304, 4, 15, 24} {
		if got := RowSums(s)[i]; got != expected {
			t.Fatalf("Sparse row %d: got %v, expected %v", i, got, expected)
		}
		if got := RowSums(d)[i]; got != expected {
			t.Fatalf("Dense row %d: got %v, expected %v", i, got, expected)
		}
	}

	cols := ColumnSums(s)
	for j, expected := range []float64{112, 115, 120} {
		if cols[j] != expected {
			t.Fatalf("Column %d: got %v, expected %v", j, cols[j], expected)
		}
	}
}

func TestSparseStoresOnlyNonZero(t *testing.T) {
	s, err := NewSparse([]string{"a", "b"}, []string{"x", "y"}, [][]float64{{0, 3}, {0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if n := s.NonZero(); n != 1 {
		t.Fatalf("Expected 1 stored cell, got %d", n)
	}
	if len(s.RowIDs()) != 2 {
		t.Fatalf("All-zero rows must be kept, got rows %v", s.RowIDs())
	}
	if s.At(1, 1) != 0 || s.At(0, 1) != 3 {
		t.Fatalf("Unexpected cells: %v %v", s.At(1, 1), s.At(0, 1))
	}
}

func TestConstructionErrors(t *testing.T) {
	if _, err := NewSparse([]string{"a", "a"}, testCols, [][]float64{{1, 2, 3}, {1, 2, 3}}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Expected ErrDuplicateID, got %v", err)
	}
	if _, err := NewDense([]string{"a"}, testCols, [][]float64{{1, 2}}); !errors.Is(err, ErrShape) {
		t.Fatalf("Expected ErrShape, got %v", err)
	}
	if _, err := NewSparse([]string{"a"}, testCols, [][]float64{{1, -2, 3}}); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("Expected ErrNegativeCount, got %v", err)
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NewSparse([]string{"a"}, testCols, [][]float64{{1, v, 3}}); !errors.Is(err, ErrNonFiniteCount) {
			t.Fatalf("Sparse: expected ErrNonFiniteCount for %v, got %v", v, err)
		}
		if _, err := NewDense([]string{"a"}, testCols, [][]float64{{1, v, 3}}); !errors.Is(err, ErrNonFiniteCount) {
			t.Fatalf("Dense: expected ErrNonFiniteCount for %v, got %v", v, err)
		}
	}
}

func TestToDense(t *testing.T) {
	s, err := NewSparse(testRows, testCols, testData)
	if err != nil {
		t.Fatal(err)
	}

	d, err := ToDense(s)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(s, d) {
		t.Fatal("ToDense changed the table")
	}

	again, err := ToDense(d)
	if err != nil {
		t.Fatal(err)
	}
	if again != d {
		t.Fatal("Expected a Dense table to be returned as is")
	}
}

func TestEmptyDense(t *testing.T) {
	d, err := NewDense(nil, testCols, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Matrix() != nil {
		t.Fatal("Expected no matrix for an empty table")
	}
	if sums := ColumnSums(d); len(sums) != 3 || sums[0] != 0 {
		t.Fatalf("Unexpected column sums %v", sums)
	}
}

func TestSortRows(t *testing.T) {
	s, _ := NewSparse(testRows, testCols, testData)
	sorted, err := SortRows(s, []string{"feature4", "feature3", "feature2", "feature1"})
	if err != nil {
		t.Fatal(err)
	}
	if sorted.RowIDs()[0] != "feature4" || sorted.At(0, 2) != 9 {
		t.Fatalf("Unexpected first row %s %v", sorted.RowIDs()[0], Row(sorted, 0))
	}
	if !Equal(s, sorted) {
		t.Fatal("Sorting must not change table contents")
	}

	if _, err := SortRows(s, []string{"feature1"}); err == nil {
		t.Fatal("Expected an error for an incomplete order")
	}
}

func TestTSVRoundTrip(t *testing.T) {
	input := "# Constructed from biom file\n" +
		"#OTU ID\tsample1\tsample2\tsample3\n" +
		"feature1\t100.0\t101.0\t103.0\n" +
		"feature2\t1.0\t1.0\t2.0\n" +
		"feature3\t4.0\t5.0\t6.0\n" +
		"feature4\t7.0\t8.0\t9.5\n"

	tbl, err := ReadTSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.RowIDs()) != 4 || len(tbl.ColumnIDs()) != 3 {
		t.Fatalf("Got %d rows and %d columns", len(tbl.RowIDs()), len(tbl.ColumnIDs()))
	}
	if tbl.ColumnIDs()[2] != "sample3" {
		t.Fatalf("Unexpected columns %v", tbl.ColumnIDs())
	}

	var buf bytes.Buffer
	if err := WriteTSV(&buf, tbl); err != nil {
		t.Fatal(err)
	}

	expected := "# Constructed from biom file\n" +
		"#OTU ID\tsample1\tsample2\tsample3\n" +
		"feature1\t100\t101\t103\n" +
		"feature2\t1\t1\t2\n" +
		"feature3\t4\t5\t6\n" +
		"feature4\t7\t8\t9.5\n"
	if buf.String() != expected {
		t.Fatalf("Got:\n%s\nExpected:\n%s", buf.String(), expected)
	}

	again, err := ReadTSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(tbl, again) {
		t.Fatal("Round trip changed the table")
	}
}

func TestReadTSVErrors(t *testing.T) {
	if _, err := ReadTSV(strings.NewReader("# Constructed from biom file\n")); err == nil {
		t.Fatal("Expected an error for a table without a header")
	}
	if _, err := ReadTSV(strings.NewReader("#OTU ID\ts1\ts2\nf1\t1\tabc\nf2\t1\t2\n")); err == nil {
		t.Fatal("Expected an error for a non-numeric count")
	}

	for _, cell := range []string{"NaN", "Inf", "-Inf", "+Inf", "nan"} {
		in := "#OTU ID\ts1\ts2\na\t" + cell + "\t1\nb\t5\t1\n"
		if _, err := ReadTSV(strings.NewReader(in)); !errors.Is(err, ErrNonFiniteCount) {
			t.Fatalf("%s: expected ErrNonFiniteCount, got %v", cell, err)
		}
	}
}
