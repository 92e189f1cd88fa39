package mcclintock

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Names of derived artifacts placed under <genome>/reference.
const (
	allTESeqsName      = "all_te_seqs.fasta"
	relocaTESeqsName   = "reloca_te_seqs.fasta"
	hierarchyTableName = "te_hierarchy"
)

// Inputs holds the six input files of one workflow invocation.
type Inputs struct {
	Reference  string // reference genome fasta
	Consensus  string // consensus TE fasta
	Annotation string // TE-location GFF, unique ID attribute per feature
	FamilyMap  string // tab-delimited TE-to-family table
	Fastq1     string // paired-end reads, mate 1
	Fastq2     string // paired-end reads, mate 2
}

// Layout describes the per-genome, per-sample output tree rooted at the
// working directory. All paths are derived, never stored.
type Layout struct {
	Root   string
	Genome string
	Sample string
}

// NewLayout derives the output layout from the reference and first read
// file, following the naming contract of the inputs.
func NewLayout(root string, in Inputs) (Layout, error) {
	genome := GenomeID(in.Reference)
	if genome == "" {
		return Layout{}, usageErrorf("reference %q yields an empty genome name", in.Reference)
	}
	sample, err := SampleID(in.Fastq1)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Root: root, Genome: genome, Sample: sample}, nil
}

func (l Layout) GenomeDir() string    { return filepath.Join(l.Root, l.Genome) }
func (l Layout) ReferenceDir() string { return filepath.Join(l.GenomeDir(), "reference") }
func (l Layout) SampleDir() string    { return filepath.Join(l.GenomeDir(), l.Sample) }
func (l Layout) FastqDir() string     { return filepath.Join(l.SampleDir(), "fastq") }
func (l Layout) SamDir() string       { return filepath.Join(l.SampleDir(), "sam") }
func (l Layout) BamDir() string       { return filepath.Join(l.SampleDir(), "bam") }

// StagedReference is the working copy of the reference fasta.
func (l Layout) StagedReference(in Inputs) string {
	return filepath.Join(l.ReferenceDir(), filepath.Base(in.Reference))
}

// StagedConsensus is the working copy of the consensus TE fasta.
func (l Layout) StagedConsensus(in Inputs) string {
	return filepath.Join(l.ReferenceDir(), filepath.Base(in.Consensus))
}

// StagedAnnotation is the working copy of the TE annotation. It holds the
// raw GFF after staging and the rewritten one once the reference has been
// prepared.
func (l Layout) StagedAnnotation(in Inputs) string {
	return filepath.Join(l.ReferenceDir(), filepath.Base(in.Annotation))
}

// StagedFamilyMap is the working copy of the TE-to-family table.
func (l Layout) StagedFamilyMap(in Inputs) string {
	return filepath.Join(l.ReferenceDir(), filepath.Base(in.FamilyMap))
}

// HierarchyGFF is the family-joined annotation consumed by the
// hierarchy-aware locator: the annotation name with its final extension
// replaced by _HL.gff.
func (l Layout) HierarchyGFF(in Inputs) string {
	base := filepath.Base(in.Annotation)
	ext := filepath.Ext(base)
	return filepath.Join(l.ReferenceDir(), strings.TrimSuffix(base, ext)+"_HL.gff")
}

// AllTESeqs is the fasta of reference sequence extracted per annotated TE copy.
func (l Layout) AllTESeqs() string { return filepath.Join(l.ReferenceDir(), allTESeqsName) }

// RelocaTESeqs is the TSD-augmented copy of the consensus TE fasta.
func (l Layout) RelocaTESeqs() string { return filepath.Join(l.ReferenceDir(), relocaTESeqsName) }

// HierarchyTable is the flat TE family hierarchy table.
func (l Layout) HierarchyTable() string { return filepath.Join(l.ReferenceDir(), hierarchyTableName) }

// StagedFastq1 and StagedFastq2 are the linked read files.
func (l Layout) StagedFastq1(in Inputs) string {
	return filepath.Join(l.FastqDir(), filepath.Base(in.Fastq1))
}
func (l Layout) StagedFastq2(in Inputs) string {
	return filepath.Join(l.FastqDir(), filepath.Base(in.Fastq2))
}

// SamFile is the intermediate alignment.
func (l Layout) SamFile() string { return filepath.Join(l.SamDir(), l.Sample+".sam") }

// BamFile is the coordinate-sorted alignment consumed by the detection tools.
func (l Layout) BamFile() string { return filepath.Join(l.BamDir(), l.Sample+".bam") }

// Create builds the output tree. The genome directory must not already
// exist: a run cannot be repeated for the same genome without removing its
// directory first.
func (l Layout) Create() error {
	if err := os.Mkdir(l.GenomeDir(), 0755); err != nil {
		if os.IsExist(err) {
			return errors.Errorf("genome directory %s already exists; remove it to rerun", l.GenomeDir())
		}
		return errors.Wrap(err, "create genome directory")
	}
	for _, dir := range []string{l.ReferenceDir(), l.FastqDir(), l.BamDir(), l.SamDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

// StageInputs populates the tree: the four reference-class inputs are
// copied into reference/ without clobbering existing files, and the two
// read files are symlinked into fastq/ under their original names.
func (l Layout) StageInputs(in Inputs) error {
	for _, src := range []string{in.Reference, in.Consensus, in.Annotation, in.FamilyMap} {
		if err := copyNoClobber(src, l.ReferenceDir()); err != nil {
			return err
		}
	}
	for _, src := range []string{in.Fastq1, in.Fastq2} {
		if err := linkInto(src, l.FastqDir()); err != nil {
			return err
		}
	}
	return nil
}

// copyNoClobber copies src into dir under its base name, carrying over
// the source's permission bits. An existing destination file is left
// untouched.
func copyNoClobber(src, dir string) error {
	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "open %s", src)
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", src)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copy %s", src)
	}
	// The umask may have masked bits at creation.
	if err := out.Chmod(fi.Mode().Perm()); err != nil {
		out.Close()
		return errors.Wrapf(err, "chmod %s", dst)
	}
	return errors.Wrapf(out.Close(), "close %s", dst)
}

// linkInto symlinks src into dir under its base name, resolving the target
// to an absolute path so the link survives directory changes.
func linkInto(src, dir string) error {
	abs, err := filepath.Abs(src)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", src)
	}
	dst := filepath.Join(dir, filepath.Base(src))
	return errors.Wrapf(os.Symlink(abs, dst), "link %s", dst)
}
