package mcclintock

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Tools names the external executables the workflow drives. Every
// invocation goes through the execution environment's PATH unless a
// configuration file points a field at an absolute path.
type Tools struct {
	Samtools string
	Bwa      string
	Bedtools string

	RelocaTE      string
	NgsTEMapper   string
	RetroSeq      string
	TELocate      string
	PopoolationTE string
}

// DefaultTools returns the conventional executable names.
func DefaultTools() Tools {
	return Tools{
		Samtools:      "samtools",
		Bwa:           "bwa",
		Bedtools:      "bedtools",
		RelocaTE:      "relocaTE.pl",
		NgsTEMapper:   "ngs_te_mapper.sh",
		RetroSeq:      "retroseq.pl",
		TELocate:      "TE_locate.sh",
		PopoolationTE: "popoolationTE.sh",
	}
}

// runTool runs an external command, blocking until it exits. Stderr is
// captured and folded into the returned error.
func runTool(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr
	Info.Printf("running %s %s", name, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return toolError(err, stderr, name, args)
	}
	return nil
}

// runToolToFile runs an external command with stdout redirected to a file.
func runToolToFile(outPath, name string, args ...string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	defer out.Close()

	cmd := exec.Command(name, args...)
	cmd.Stdout = out
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr
	Info.Printf("running %s %s > %s", name, strings.Join(args, " "), outPath)
	if err := cmd.Run(); err != nil {
		return toolError(err, stderr, name, args)
	}
	return nil
}

func toolError(err error, stderr *bytes.Buffer, name string, args []string) error {
	msg := strings.TrimSpace(stderr.String())
	if msg != "" {
		return errors.Wrapf(err, "%s %s: %s", name, strings.Join(args, " "), msg)
	}
	return errors.Wrapf(err, "%s %s", name, strings.Join(args, " "))
}
