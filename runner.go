package mcclintock

import (
	"time"
)

// Stage is one sequential step of the workflow. Fatal stages gate the
// stages after them regardless of the pipeline's failure policy.
type Stage struct {
	Name  string
	Fatal bool
	Run   func() error
}

// Outcome records how one stage finished.
type Outcome struct {
	Stage    string
	Err      error
	Duration time.Duration
}

// Pipeline executes stages strictly in order, one at a time, each
// blocking until it exits. FailFast stops at the first failed stage;
// the default is the workflow's historical best-effort behavior, where
// every non-fatal stage runs regardless of earlier failures.
type Pipeline struct {
	FailFast bool

	// AfterStage, when set, observes each outcome as it is recorded.
	AfterStage func(Outcome)

	stages []Stage
}

// Add appends a non-fatal stage.
func (p *Pipeline) Add(name string, run func() error) {
	p.stages = append(p.stages, Stage{Name: name, Run: run})
}

// AddFatal appends a stage whose failure always stops the pipeline.
func (p *Pipeline) AddFatal(name string, run func() error) {
	p.stages = append(p.stages, Stage{Name: name, Fatal: true, Run: run})
}

// Len returns the number of registered stages.
func (p *Pipeline) Len() int { return len(p.stages) }

// Run executes the pipeline and returns one outcome per executed stage.
func (p *Pipeline) Run() []Outcome {
	outcomes := make([]Outcome, 0, len(p.stages))
	for _, s := range p.stages {
		Info.Printf("stage %s starting", s.Name)
		begin := time.Now()
		err := s.Run()
		o := Outcome{Stage: s.Name, Err: err, Duration: time.Since(begin)}
		outcomes = append(outcomes, o)
		if p.AfterStage != nil {
			p.AfterStage(o)
		}
		if err != nil {
			Warn.Printf("stage %s failed after %v: %v", s.Name, o.Duration, err)
			if s.Fatal || p.FailFast {
				break
			}
			continue
		}
		Info.Printf("stage %s finished in %v", s.Name, o.Duration)
	}
	return outcomes
}

// Failed reports whether any outcome carries an error.
func Failed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}
