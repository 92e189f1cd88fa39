package mcclintock

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Feature is one record of a tab-delimited TE annotation file.
type Feature struct {
	SeqID      string
	Source     string
	Type       string
	Start      int
	End        int
	Score      string
	Strand     string
	Frame      string
	Attributes string
}

// ReadAnnotation reads a GFF file, dropping comment lines.
func ReadAnnotation(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var feats []Feature
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			return nil, errors.Errorf("%s: record has %d columns, want 9: %q", path, len(fields), line)
		}
		start, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: bad start in %q", path, line)
		}
		end, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: bad end in %q", path, line)
		}
		feats = append(feats, Feature{
			SeqID:      fields[0],
			Source:     fields[1],
			Type:       fields[2],
			Start:      start,
			End:        end,
			Score:      fields[5],
			Strand:     fields[6],
			Frame:      fields[7],
			Attributes: fields[8],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return feats, nil
}

// WriteAnnotation writes features as tab-delimited GFF records.
func WriteAnnotation(feats []Feature, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	w := bufio.NewWriter(f)
	for _, ft := range feats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			ft.SeqID, ft.Source, ft.Type, ft.Start, ft.End, ft.Score, ft.Strand, ft.Frame, ft.Attributes)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// featureID scans the attribute tokens for one carrying "ID" and returns
// its value. When several tokens match, the last one wins; this mirrors
// the long-standing behavior of the original annotation rewriter and
// downstream tolerance for changing it is unverified.
func featureID(attributes string) (string, bool) {
	var id string
	var found bool
	for _, tok := range strings.Split(attributes, ";") {
		if !strings.Contains(tok, "ID") {
			continue
		}
		kv := strings.SplitN(tok, "=", 2)
		if len(kv) == 2 {
			id = kv[1]
			found = true
		}
	}
	return id, found
}

// RewriteAnnotation normalizes a raw TE annotation for the detection
// tools: comments are dropped, the feature type column is replaced with
// the feature's ID, and the attributes are rewritten to exactly
// ID=v;Name=v;Alias=v. All other columns pass through unchanged. The
// rewritten records are returned in input order.
func RewriteAnnotation(feats []Feature) ([]Feature, error) {
	out := make([]Feature, 0, len(feats))
	seen := make(map[string]bool, len(feats))
	for _, ft := range feats {
		id, ok := featureID(ft.Attributes)
		if !ok {
			return nil, errors.Errorf("feature %s:%d-%d carries no ID attribute", ft.SeqID, ft.Start, ft.End)
		}
		if seen[id] {
			return nil, errors.Errorf("duplicate feature ID %q; the detection tools require unique IDs", id)
		}
		seen[id] = true
		ft.Type = id
		ft.Attributes = fmt.Sprintf("ID=%s;Name=%s;Alias=%s", id, id, id)
		out = append(out, ft)
	}
	return out, nil
}

// Alias returns the Alias attribute of a rewritten feature.
func (ft Feature) Alias() (string, bool) {
	for _, tok := range strings.Split(ft.Attributes, ";") {
		if strings.HasPrefix(tok, "Alias=") {
			return strings.TrimPrefix(tok, "Alias="), true
		}
	}
	return "", false
}
