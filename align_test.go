package mcclintock

import (
	"os"
	"testing"
)

// The pre-conversion SAM sort is a plain lexical line sort, not a
// coordinate sort. The coordinate ordering the detection tools rely on is
// established afterwards by the alignment sorter; this only pins down the
// preserved text-level behavior.
func TestSortLinesIsLexical(t *testing.T) {
	path := writeFile(t, t.TempDir(), "aln.sam",
		"r2\t0\t2L\t300\n@HD\tVN:1.6\nr1\t0\t2L\t100\n")
	if err := sortLines(path); err != nil {
		t.Fatalf("sortLines: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "@HD\tVN:1.6\nr1\t0\t2L\t100\nr2\t0\t2L\t300\n"
	if string(data) != want {
		t.Errorf("sorted file:\n%swant:\n%s", data, want)
	}
}

func TestSortLinesEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.sam", "")
	if err := sortLines(path); err != nil {
		t.Fatalf("sortLines: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("empty file grew to %q", data)
	}
}
