package mcclintock

import (
	"os"

	"github.com/biogo/biogo/io/seqio/fai"
	"github.com/pkg/errors"
)

// Run carries the immutable state of one workflow invocation through every
// stage: resolved inputs, the output layout, the external tool set, and
// runtime knobs. Nothing mutates a Run after the command layer builds it.
type Run struct {
	ID      string
	Inputs  Inputs
	Layout  Layout
	Tools   Tools
	Threads int
}

// PrepareReference builds the shared per-genome artifacts. Each step
// depends on the previous one, so the first failure aborts the whole
// preparation:
//
//  1. sequence and alignment indices over the staged reference
//  2. annotation rewrite with ID-keyed attributes
//  3. per-interval reference extraction into one fasta
//  4. TSD-augmented consensus copy
func PrepareReference(run *Run) error {
	ref := run.Layout.StagedReference(run.Inputs)
	if err := runTool(run.Tools.Samtools, "faidx", ref); err != nil {
		return errors.Wrap(err, "sequence index")
	}
	if err := runTool(run.Tools.Bwa, "index", ref); err != nil {
		return errors.Wrap(err, "alignment index")
	}

	gff := run.Layout.StagedAnnotation(run.Inputs)
	raw, err := ReadAnnotation(gff)
	if err != nil {
		return err
	}
	feats, err := RewriteAnnotation(raw)
	if err != nil {
		return err
	}
	if err := WriteAnnotation(feats, gff); err != nil {
		return err
	}
	Info.Printf("rewrote %d TE annotation records in %s", len(feats), gff)

	if err := checkIntervals(ref+".fai", feats); err != nil {
		return err
	}
	allTE := run.Layout.AllTESeqs()
	if err := runTool(run.Tools.Bedtools, "getfasta", "-name", "-fi", ref, "-bed", gff, "-fo", allTE); err != nil {
		return errors.Wrap(err, "extract TE copies")
	}
	n, err := CountSequences(allTE)
	if err != nil {
		return err
	}
	if n != len(feats) {
		return errors.Errorf("extracted %d TE copy sequences from %d annotated intervals", n, len(feats))
	}

	m, err := AugmentTSD(run.Layout.StagedConsensus(run.Inputs), run.Layout.RelocaTESeqs())
	if err != nil {
		return err
	}
	Info.Printf("augmented %d consensus sequences with TSD=UNK", m)
	return nil
}

// checkIntervals verifies every annotated interval against the sequence
// index before extraction.
func checkIntervals(faiPath string, feats []Feature) error {
	f, err := os.Open(faiPath)
	if err != nil {
		return errors.Wrapf(err, "open %s", faiPath)
	}
	defer f.Close()
	idx, err := fai.ReadFrom(f)
	if err != nil {
		return errors.Wrapf(err, "parse %s", faiPath)
	}
	for _, ft := range feats {
		rec, ok := idx[ft.SeqID]
		if !ok {
			return errors.Errorf("annotation names sequence %q absent from the reference", ft.SeqID)
		}
		if ft.Start < 1 || ft.End < ft.Start || ft.End > rec.Length {
			return errors.Errorf("interval %s:%d-%d outside sequence bounds (1-%d)", ft.SeqID, ft.Start, ft.End, rec.Length)
		}
	}
	return nil
}
