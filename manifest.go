package mcclintock

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// manifestName is the per-run record written under the sample directory.
const manifestName = "run_info"

// ManifestFile is the path of the run manifest.
func (l Layout) ManifestFile() string { return filepath.Join(l.SampleDir(), manifestName) }

// WriteManifest records the run identifier and the resolved inputs of one
// invocation under the sample directory, tying the staged tree back to
// the run that produced it.
func WriteManifest(run *Run) error {
	path := run.Layout.ManifestFile()
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "run\t%s\n", run.ID)
	fmt.Fprintf(w, "genome\t%s\n", run.Layout.Genome)
	fmt.Fprintf(w, "sample\t%s\n", run.Layout.Sample)
	fmt.Fprintf(w, "reference\t%s\n", run.Inputs.Reference)
	fmt.Fprintf(w, "consensus\t%s\n", run.Inputs.Consensus)
	fmt.Fprintf(w, "te_locations\t%s\n", run.Inputs.Annotation)
	fmt.Fprintf(w, "te_families\t%s\n", run.Inputs.FamilyMap)
	fmt.Fprintf(w, "fastq1\t%s\n", run.Inputs.Fastq1)
	fmt.Fprintf(w, "fastq2\t%s\n", run.Inputs.Fastq2)
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
