package uchime

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const testStats = "0.0000\tfeature1;size=304\t*\t*\t*\t*\t*\t*\t*\t*\t0\t0\t0\t0\t0\t0\t*\tN\n" +
	"0.2800\tfeature3;size=15\tfeature1;size=304\tfeature4;size=24\tfeature1;size=304\t100.0\t97.6\t95.2\t92.9\t97.6\t1\t0\t0\t1\t0\t0\t2.4\t?\n" +
	"0.0000\tfeature2;size=4\t*\t*\t*\t*\t*\t*\t*\t*\t0\t0\t0\t0\t0\t0\t*\tN\n"

func TestRead(t *testing.T) {
	m, err := Read(strings.NewReader(testStats))
	if err != nil {
		t.Fatal(err)
	}

	if expected := []string{"feature1;size=304", "feature3;size=15", "feature2;size=4"}; !reflect.DeepEqual(m.IDs(), expected) {
		t.Fatalf("Expected ids %v, got %v", expected, m.IDs())
	}

	if m.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", m.Len())
	}

	if cols := m.Columns(); len(cols) != NumFields-1 || cols[0] != "score" || cols[len(cols)-1] != "YN" {
		t.Fatalf("Unexpected columns %v", cols)
	}

	score, exists := m.Score("feature3;size=15")
	if !exists || score != 0.28 {
		t.Fatalf("Expected a score of 0.28, got %v (%v)", score, exists)
	}

	cases := []struct {
		ID       string
		Column   string
		Expected string
	}{
		{"feature3;size=15", "A", "feature1;size=304"},
		{"feature3;size=15", "idQB", "95.2"},
		{"feature3;size=15", "div", "2.4"},
		{"feature3;size=15", "YN", "?"},
		{"feature3;size=15", "score", "0.28"},
		{"feature1;size=304", "A", "*"},
		{"feature2;size=4", "YN", "N"},
	}

	for _, c := range cases {
		got, exists := m.Get(c.ID, c.Column)
		if !exists || got != c.Expected {
			t.Fatalf("Get(%s, %s): expected %q, got %q (%v)", c.ID, c.Column, c.Expected, got, exists)
		}
	}

	if _, exists := m.Get("feature9", "A"); exists {
		t.Fatalf("Expected no record for feature9")
	}
	if _, exists := m.Get("feature1;size=304", "nope"); exists {
		t.Fatalf("Expected no column named nope")
	}

	rec, exists := m.Record("feature3;size=15")
	if !exists || rec.B != "feature4;size=24" || rec.LY != "1" {
		t.Fatalf("Unexpected record %+v", rec)
	}
}

func TestReadEmpty(t *testing.T) {
	m, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 || len(m.IDs()) != 0 {
		t.Fatalf("Expected empty metadata, got %v", m.IDs())
	}
}

func TestReadMalformed(t *testing.T) {
	good := strings.SplitAfter(testStats, "\n")[0]

	cases := []struct {
		Name  string
		Input string
		Line  int
	}{
		{"too few columns", good + "0.1\tfeature2\t*\n", 2},
		{"too many columns", strings.TrimSuffix(good, "\n") + "\textra\n", 1},
		{"score", good + strings.Replace(good, "0.0000\tfeature1", "high\tfeature5", 1), 2},
		{"duplicate", good + good, 2},
		{"empty id", strings.Replace(good, "feature1;size=304", "", 1), 1},
	}

	for _, c := range cases {
		_, err := Read(strings.NewReader(c.Input))
		if !errors.Is(err, ErrMalformedAuxiliaryRecord) {
			t.Fatalf("%s: expected ErrMalformedAuxiliaryRecord, got %v", c.Name, err)
		}

		var merr *MalformedRecordError
		if !errors.As(err, &merr) {
			t.Fatalf("%s: expected a MalformedRecordError, got %T", c.Name, err)
		}
		if merr.Line != c.Line {
			t.Fatalf("%s: expected line %d, got %d", c.Name, c.Line, merr.Line)
		}
	}
}

func TestWriteTSV(t *testing.T) {
	m, err := Read(strings.NewReader(testStats))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteTSV(&buf, m); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected a header and 3 rows, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], "feature-id\tscore\tA\tB\tT\t") {
		t.Fatalf("Unexpected header %q", lines[0])
	}

	if fields := strings.Split(lines[2], "\t"); len(fields) != NumFields || fields[0] != "feature3;size=15" || fields[1] != "0.28" {
		t.Fatalf("Unexpected row %q", lines[2])
	}

	if expected := "feature-id\t" + strings.Join(m.Columns(), "\t"); lines[0] != expected {
		t.Fatalf("Expected header %q, got %q", expected, lines[0])
	}

	if expected := "feature1;size=304\t0\t*\t*\t*\t*\t*\t*\t*\t*\t0\t0\t0\t0\t0\t0\t*\tN"; lines[1] != expected {
		t.Fatalf("Expected %q, got %q", expected, lines[1])
	}

	if expected := "feature3;size=15\t0.28\tfeature1;size=304\tfeature4;size=24\tfeature1;size=304\t100.0\t97.6\t95.2\t92.9\t97.6\t1\t0\t0\t1\t0\t0\t2.4\t?"; lines[2] != expected {
		t.Fatalf("Expected %q, got %q", expected, lines[2])
	}
}
