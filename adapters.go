package mcclintock

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// One adapter per detection back end. Each builds a fixed command line
// from the prepared artifact subset that back end consumes and blocks
// until the tool exits. Results land in a per-tool directory under the
// sample; nothing flows back into the orchestrator.

func toolOutDir(run *Run, tool string) (string, error) {
	dir := filepath.Join(run.Layout.SampleDir(), tool)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}
	return dir, nil
}

// RunRelocaTE drives the assembly-based caller. It is the only consumer
// of the TSD-augmented consensus copy.
func RunRelocaTE(run *Run) error {
	dir, err := toolOutDir(run, "relocate")
	if err != nil {
		return err
	}
	return runTool(run.Tools.RelocaTE,
		"-t", run.Layout.RelocaTESeqs(),
		"-g", run.Layout.StagedReference(run.Inputs),
		"-d", run.Layout.FastqDir(),
		"-1", "_1", "-2", "_2",
		"-r", run.Layout.StagedAnnotation(run.Inputs),
		"-o", dir)
}

// RunNgsTEMapper drives the split-read mapper over the raw read pair and
// the extracted reference TE copies.
func RunNgsTEMapper(run *Run) error {
	dir, err := toolOutDir(run, "ngs_te_mapper")
	if err != nil {
		return err
	}
	return runTool(run.Tools.NgsTEMapper,
		"sample="+run.Layout.StagedFastq1(run.Inputs)+";"+run.Layout.StagedFastq2(run.Inputs),
		"genome="+run.Layout.StagedReference(run.Inputs),
		"teFile="+run.Layout.AllTESeqs(),
		"output="+dir)
}

// RunRetroSeq drives the read-pair-based caller: a discovery pass over
// the sorted alignment followed by the calling pass.
func RunRetroSeq(run *Run) error {
	dir, err := toolOutDir(run, "retroseq")
	if err != nil {
		return err
	}
	candidates := filepath.Join(dir, run.Layout.Sample+".candidates")
	err = runTool(run.Tools.RetroSeq,
		"-discover",
		"-bam", run.Layout.BamFile(),
		"-eref", run.Layout.StagedConsensus(run.Inputs),
		"-refTEs", run.Layout.StagedAnnotation(run.Inputs),
		"-output", candidates)
	if err != nil {
		return err
	}
	return runTool(run.Tools.RetroSeq,
		"-call",
		"-bam", run.Layout.BamFile(),
		"-input", candidates,
		"-ref", run.Layout.StagedReference(run.Inputs),
		"-output", filepath.Join(dir, run.Layout.Sample+".calls"))
}

// RunTELocate drives the hierarchy-aware locator; it is the only
// consumer of the joined hierarchy GFF.
func RunTELocate(run *Run) error {
	dir, err := toolOutDir(run, "te_locate")
	if err != nil {
		return err
	}
	return runTool(run.Tools.TELocate,
		run.Layout.BamFile(),
		run.Layout.HierarchyGFF(run.Inputs),
		run.Layout.StagedReference(run.Inputs),
		dir)
}

// RunPopoolationTE drives the population-frequency estimator; it is the
// only consumer of the flat hierarchy table.
func RunPopoolationTE(run *Run) error {
	dir, err := toolOutDir(run, "popoolationte")
	if err != nil {
		return err
	}
	return runTool(run.Tools.PopoolationTE,
		run.Layout.StagedReference(run.Inputs),
		run.Layout.AllTESeqs(),
		run.Layout.HierarchyTable(),
		run.Layout.StagedFastq1(run.Inputs),
		run.Layout.StagedFastq2(run.Inputs),
		dir)
}
