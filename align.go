package mcclintock

import (
	"bufio"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// AlignReads maps the paired-end sample against the staged reference and
// leaves a coordinate-sorted, indexed BAM for the detection tools:
//
//	bwa mem -> <sample>.sam -> line sort -> unsorted BAM -> samtools sort -> index
//
// The text-level sort of the SAM predates this implementation and is not a
// coordinate sort; it is kept because downstream tolerance for removing it
// is unverified. The samtools sort that follows is the ordering the
// detection tools actually rely on, and the final BAM is verified before
// this function returns.
func AlignReads(run *Run) error {
	ref := run.Layout.StagedReference(run.Inputs)
	samPath := run.Layout.SamFile()
	err := runToolToFile(samPath, run.Tools.Bwa, "mem",
		"-t", strconv.Itoa(run.Threads),
		"-v", "1",
		ref,
		run.Layout.StagedFastq1(run.Inputs),
		run.Layout.StagedFastq2(run.Inputs))
	if err != nil {
		return errors.Wrap(err, "align reads")
	}

	if err := sortLines(samPath); err != nil {
		return err
	}

	bamPath := run.Layout.BamFile()
	unsorted := bamPath + ".unsorted"
	if err := runTool(run.Tools.Samtools, "view", "-Sb", "-o", unsorted, samPath); err != nil {
		return errors.Wrap(err, "convert to bam")
	}
	if err := runTool(run.Tools.Samtools, "sort", "-o", bamPath, unsorted); err != nil {
		return errors.Wrap(err, "sort bam")
	}
	if err := os.Remove(unsorted); err != nil {
		Warn.Printf("leaving intermediate %s: %v", unsorted, err)
	}
	if err := runTool(run.Tools.Samtools, "index", bamPath); err != nil {
		return errors.Wrap(err, "index bam")
	}

	n, err := VerifyBAM(bamPath)
	if err != nil {
		return err
	}
	Info.Printf("aligned sample %s: %d records in %s", run.Layout.Sample, n, bamPath)
	return nil
}

// sortLines rewrites a text file with its lines in lexical order.
func sortLines(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return errors.Wrapf(err, "read %s", path)
	}
	f.Close()

	sort.Strings(lines)

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "rewrite %s", path)
	}
	w := bufio.NewWriter(out)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(out.Close(), "close %s", path)
}
