package mcclintock

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAugmentTSD(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "teConsensus.fasta", ">Gypsy gypsy retroelement\nACGTACGT\n>Copia\nTTTTNNNN\n")
	dst := filepath.Join(dir, "reloca_te_seqs.fasta")

	n, err := AugmentTSD(src, dst)
	if err != nil {
		t.Fatalf("AugmentTSD: %v", err)
	}
	if n != 2 {
		t.Fatalf("wrote %d sequences, want 2", n)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	var headers []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, ">") {
			headers = append(headers, line)
		}
	}
	if len(headers) != 2 {
		t.Fatalf("got %d headers, want 2", len(headers))
	}
	if headers[0] != ">Gypsy gypsy retroelement TSD=UNK" {
		t.Errorf("header = %q", headers[0])
	}
	if headers[1] != ">Copia TSD=UNK" {
		t.Errorf("header = %q", headers[1])
	}
}

func TestCountSequences(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "seqs.fasta", ">a\nACGT\n>b\nAC\nGT\n>c\nNNN\n")
	n, err := CountSequences(path)
	if err != nil {
		t.Fatalf("CountSequences: %v", err)
	}
	if n != 3 {
		t.Errorf("CountSequences = %d, want 3", n)
	}
}
