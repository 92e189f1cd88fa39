package mcclintock

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// FamilyMapping is one row of the TE-to-family table: a TE identifier and
// the family it belongs to.
type FamilyMapping struct {
	ID     string
	Family string
}

// ReadFamilyMap reads a two-column, tab-delimited TE-to-family table,
// preserving row order.
func ReadFamilyMap(path string) ([]FamilyMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var mappings []FamilyMapping
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, errors.Errorf("%s: row %q has no family column", path, line)
		}
		mappings = append(mappings, FamilyMapping{ID: fields[0], Family: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return mappings, nil
}

// BuildHierarchy derives the two family-hierarchy artifacts from the
// rewritten annotation and the family map: the joined hierarchy GFF for
// the hierarchy-aware locator and the flat hierarchy table for the
// population-frequency estimator.
func BuildHierarchy(run *Run) error {
	feats, err := ReadAnnotation(run.Layout.StagedAnnotation(run.Inputs))
	if err != nil {
		return err
	}
	mappings, err := ReadFamilyMap(run.Layout.StagedFamilyMap(run.Inputs))
	if err != nil {
		return err
	}
	if err := WriteHierarchyGFF(feats, mappings, run.Layout.HierarchyGFF(run.Inputs)); err != nil {
		return err
	}
	if err := WriteHierarchyTable(mappings, run.Layout.HierarchyTable()); err != nil {
		return err
	}
	Info.Printf("built hierarchy artifacts for %d TE copies in %d families", len(feats), len(mappings))
	return nil
}

// WriteHierarchyGFF joins annotation records with family-mapping rows on
// the Alias attribute, extending matched records with a Family attribute.
// Records with no mapping pass through unchanged.
func WriteHierarchyGFF(feats []Feature, mappings []FamilyMapping, path string) error {
	families := make(map[string]string, len(mappings))
	for _, m := range mappings {
		families[m.ID] = m.Family
	}
	out := make([]Feature, 0, len(feats))
	for _, ft := range feats {
		if alias, ok := ft.Alias(); ok {
			if fam, ok := families[alias]; ok {
				ft.Attributes += ";Family=" + fam
			}
		}
		out = append(out, ft)
	}
	return WriteAnnotation(out, path)
}

// WriteHierarchyTable writes the flat TE taxonomy table: one header row
// and one row per family-mapping entry. Superfamily mirrors family;
// suborder, order and class carry the placeholder "na"; the problem flag
// is always 0.
func WriteHierarchyTable(mappings []FamilyMapping, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "insert\tid\tfamily\tsuperfamily\tsuborder\torder\tclass\tproblem")
	for _, m := range mappings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\tna\tna\tna\t0\n", m.ID, m.ID, m.Family, m.Family)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
