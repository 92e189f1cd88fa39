package mcclintock

import (
	"testing"

	"github.com/pkg/errors"
)

func TestPipelineBestEffort(t *testing.T) {
	var ran []string
	step := func(name string, err error) func() error {
		return func() error {
			ran = append(ran, name)
			return err
		}
	}

	p := &Pipeline{}
	p.Add("a", step("a", nil))
	p.Add("b", step("b", errors.New("boom")))
	p.Add("c", step("c", nil))

	outcomes := p.Run()
	if len(outcomes) != 3 {
		t.Fatalf("ran %d stages, want 3", len(outcomes))
	}
	if want := []string{"a", "b", "c"}; !equal(ran, want) {
		t.Errorf("ran %v, want %v", ran, want)
	}
	if !Failed(outcomes) {
		t.Error("Failed() = false with a failed stage")
	}
	if outcomes[1].Err == nil || outcomes[0].Err != nil || outcomes[2].Err != nil {
		t.Errorf("outcomes = %+v", outcomes)
	}
}

func TestPipelineFailFast(t *testing.T) {
	var ran []string
	p := &Pipeline{FailFast: true}
	p.Add("a", func() error { ran = append(ran, "a"); return errors.New("boom") })
	p.Add("b", func() error { ran = append(ran, "b"); return nil })

	outcomes := p.Run()
	if len(outcomes) != 1 || len(ran) != 1 {
		t.Fatalf("outcomes = %d, ran = %v; fail-fast must stop after the first failure", len(outcomes), ran)
	}
}

func TestPipelineFatalStageGates(t *testing.T) {
	var ran []string
	p := &Pipeline{} // best-effort policy
	p.AddFatal("prepare", func() error { ran = append(ran, "prepare"); return errors.New("boom") })
	p.Add("tool", func() error { ran = append(ran, "tool"); return nil })

	p.Run()
	if len(ran) != 1 {
		t.Fatalf("ran %v; a failed fatal stage must gate later stages regardless of policy", ran)
	}
}

func TestPipelineAfterStage(t *testing.T) {
	var seen []string
	p := &Pipeline{AfterStage: func(o Outcome) { seen = append(seen, o.Stage) }}
	p.Add("a", func() error { return nil })
	p.Add("b", func() error { return nil })
	p.Run()
	if !equal(seen, []string{"a", "b"}) {
		t.Errorf("observed %v", seen)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
