package mcclintock

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFamilyMap(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fam.tsv", "TE1\tGypsy\n\nTE2\tCopia\n")
	mappings, err := ReadFamilyMap(path)
	if err != nil {
		t.Fatalf("ReadFamilyMap: %v", err)
	}
	want := []FamilyMapping{{"TE1", "Gypsy"}, {"TE2", "Copia"}}
	if len(mappings) != len(want) {
		t.Fatalf("got %d rows, want %d", len(mappings), len(want))
	}
	for i, m := range mappings {
		if m != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, m, want[i])
		}
	}
}

func TestReadFamilyMapRejectsShortRow(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fam.tsv", "TE1\n")
	if _, err := ReadFamilyMap(path); err == nil {
		t.Error("ReadFamilyMap accepted a row without a family column")
	}
}

func TestWriteHierarchyTable(t *testing.T) {
	mappings := []FamilyMapping{{"TE1", "Gypsy"}, {"TE2", "Copia"}}
	path := filepath.Join(t.TempDir(), "te_hierarchy")
	if err := WriteHierarchyTable(mappings, path); err != nil {
		t.Fatalf("WriteHierarchyTable: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != len(mappings)+1 {
		t.Fatalf("got %d lines, want %d", len(lines), len(mappings)+1)
	}
	if lines[0] != "insert\tid\tfamily\tsuperfamily\tsuborder\torder\tclass\tproblem" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "TE1\tTE1\tGypsy\tGypsy\tna\tna\tna\t0" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "TE2\tTE2\tCopia\tCopia\tna\tna\tna\t0" {
		t.Errorf("row 2 = %q", lines[2])
	}
	for _, line := range lines[1:] {
		cols := strings.Split(line, "\t")
		if len(cols) != 8 {
			t.Fatalf("row %q has %d columns, want 8", line, len(cols))
		}
		if cols[2] != cols[3] {
			t.Errorf("row %q: superfamily %q does not mirror family %q", line, cols[3], cols[2])
		}
	}
}

func TestWriteHierarchyGFF(t *testing.T) {
	feats := []Feature{
		{SeqID: "2L", Source: "x", Type: "TE1", Start: 100, End: 500, Score: ".", Strand: "+", Frame: ".", Attributes: "ID=TE1;Name=TE1;Alias=TE1"},
		{SeqID: "2R", Source: "x", Type: "TE2", Start: 2000, End: 2600, Score: ".", Strand: "-", Frame: ".", Attributes: "ID=TE2;Name=TE2;Alias=TE2"},
		{SeqID: "3L", Source: "x", Type: "TE3", Start: 10, End: 20, Score: ".", Strand: "+", Frame: ".", Attributes: "ID=TE3;Name=TE3;Alias=TE3"},
	}
	mappings := []FamilyMapping{{"TE1", "Gypsy"}, {"TE2", "Copia"}}
	path := filepath.Join(t.TempDir(), "teLocs_HL.gff")
	if err := WriteHierarchyGFF(feats, mappings, path); err != nil {
		t.Fatalf("WriteHierarchyGFF: %v", err)
	}
	out, err := ReadAnnotation(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(feats) {
		t.Fatalf("got %d records, want %d", len(out), len(feats))
	}
	if out[0].Attributes != "ID=TE1;Name=TE1;Alias=TE1;Family=Gypsy" {
		t.Errorf("joined record = %q", out[0].Attributes)
	}
	if out[1].Attributes != "ID=TE2;Name=TE2;Alias=TE2;Family=Copia" {
		t.Errorf("joined record = %q", out[1].Attributes)
	}
	// No mapping for TE3: the record passes through unchanged.
	if out[2].Attributes != "ID=TE3;Name=TE3;Alias=TE3" {
		t.Errorf("unmapped record = %q", out[2].Attributes)
	}
}
