package mcclintock

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// UsageError reports input that violates the command's naming contract,
// such as a read file that does not follow the paired-end convention.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

func usageErrorf(format string, args ...interface{}) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// Paired-end read one of a pair: <sample>_1.<ext>
var fastq1Pattern = regexp.MustCompile(`^(.+)_1\.[^.]+$`)

// GenomeID derives the genome identifier from the reference fasta path:
// the base name truncated at the first period.
func GenomeID(refPath string) string {
	return strings.Split(filepath.Base(refPath), ".")[0]
}

// SampleID derives the sample identifier from the first read file of a
// paired-end sample by stripping the trailing _1.<ext> suffix. Read files
// must follow the <sample>_1.<ext> / <sample>_2.<ext> convention.
func SampleID(fastq1 string) (string, error) {
	base := filepath.Base(fastq1)
	m := fastq1Pattern.FindStringSubmatch(base)
	if m == nil {
		return "", usageErrorf("read file %q does not follow the <sample>_1.<ext> naming convention", base)
	}
	if m[1] == "" {
		return "", usageErrorf("read file %q yields an empty sample name", base)
	}
	return m[1], nil
}
