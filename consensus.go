package mcclintock

import (
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

// AugmentTSD writes a copy of the consensus TE fasta with a TSD=UNK marker
// appended to every sequence header. The assembly-based caller requires an
// explicit target-site-duplication length on each consensus sequence;
// UNK declares it unknown. Returns the number of sequences written.
func AugmentTSD(src, dst string) (int, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", src)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return 0, errors.Wrapf(err, "create %s", dst)
	}

	w := fasta.NewWriter(out, 60)
	sc := seqio.NewScanner(fasta.NewReader(in, linear.NewSeq("", nil, alphabet.DNAredundant)))
	n := 0
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if s.Desc == "" {
			s.Desc = "TSD=UNK"
		} else {
			s.Desc += " TSD=UNK"
		}
		if _, err := w.Write(s); err != nil {
			out.Close()
			return n, errors.Wrapf(err, "write %s", dst)
		}
		n++
	}
	if err := sc.Error(); err != nil {
		out.Close()
		return n, errors.Wrapf(err, "read %s", src)
	}
	return n, errors.Wrapf(out.Close(), "close %s", dst)
}

// CountSequences returns the number of sequences in a fasta file.
func CountSequences(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNAredundant)))
	n := 0
	for sc.Next() {
		n++
	}
	if err := sc.Error(); err != nil {
		return n, errors.Wrapf(err, "read %s", path)
	}
	return n, nil
}
