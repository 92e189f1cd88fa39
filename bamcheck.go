package mcclintock

// BAM file checks.

import (
	"io"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

// VerifyBAM opens a BAM file, requires its header to declare coordinate
// sort order, and returns the record count. The detection tools assume a
// coordinate-sorted alignment.
func VerifyBAM(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r, err := bam.NewReader(f, 1)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", path)
	}
	defer r.Close()

	if so := r.Header().SortOrder; so != sam.Coordinate {
		return 0, errors.Errorf("%s is %s-sorted, want coordinate", path, so)
	}

	n := 0
	for {
		if _, err := r.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return n, errors.Wrapf(err, "read %s", path)
		}
		n++
	}
	return n, nil
}
