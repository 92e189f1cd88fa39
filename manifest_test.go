package mcclintock

import (
	"os"
	"strings"
	"testing"
)

func TestWriteManifest(t *testing.T) {
	in, _ := testInputs(t)
	root := t.TempDir()
	l, err := NewLayout(root, in)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Create(); err != nil {
		t.Fatal(err)
	}

	run := &Run{ID: "0f2c7a1e-test-run", Inputs: in, Layout: l}
	if err := WriteManifest(run); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	data, err := os.ReadFile(l.ManifestFile())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d manifest lines, want 9", len(lines))
	}
	fields := make(map[string]string, len(lines))
	for _, line := range lines {
		kv := strings.SplitN(line, "\t", 2)
		if len(kv) != 2 {
			t.Fatalf("manifest line %q is not key\\tvalue", line)
		}
		fields[kv[0]] = kv[1]
	}
	checks := []struct{ key, want string }{
		{"run", run.ID},
		{"genome", "Dmel"},
		{"sample", "S1"},
		{"reference", in.Reference},
		{"fastq2", in.Fastq2},
	}
	for _, c := range checks {
		if fields[c.key] != c.want {
			t.Errorf("manifest %s = %q, want %q", c.key, fields[c.key], c.want)
		}
	}
}
