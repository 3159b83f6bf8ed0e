package orchestration

import (
	"errors"
	"time"

	"github.com/imamik/atlasctl/internal/reconcile"
)

// Result is the outcome of one pass within an apply.
type Result struct {
	Kind     reconcile.Kind     `json:"kind"`
	Key      string             `json:"key"`
	Outcome  *reconcile.Outcome `json:"outcome,omitempty"`
	Err      error              `json:"-"`
	Duration time.Duration      `json:"-"`
}

// Name identifies the resource as kind/key.
func (r Result) Name() string {
	return string(r.Kind) + "/" + r.Key
}

// Report lists the results of an apply in document order: clusters first,
// then users.
type Report struct {
	Results []Result `json:"results"`
}

// Changed counts passes that wrote to Atlas.
func (r *Report) Changed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil && res.Outcome != nil && res.Outcome.Changed {
			n++
		}
	}
	return n
}

// Unchanged counts passes that found nothing to do.
func (r *Report) Unchanged() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil && res.Outcome != nil && !res.Outcome.Changed {
			n++
		}
	}
	return n
}

// Failed counts passes that returned an error.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Err joins the errors of every failed pass.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}
