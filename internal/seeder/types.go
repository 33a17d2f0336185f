package seeder

import (
	"time"

	"go.uber.org/multierr"
)

// ClearResult is the outcome of wiping one collection or bucket.
type ClearResult struct {
	Target  string
	Total   int
	Deleted int
	Err     error // listing failure or every failed delete, combined
}

func (r ClearResult) Failed() int {
	return r.Total - r.Deleted
}

// Report describes one seeding run.
type Report struct {
	Cleared        []ClearResult
	Categories     int
	Customizations int
	MenuItems      int
	Images         int
	Links          int
	Warnings       []string
	Err            error
	Duration       time.Duration
}

// ClearErrors returns every failure recorded while clearing.
func (r *Report) ClearErrors() []error {
	var errs []error
	for _, c := range r.Cleared {
		errs = append(errs, multierr.Errors(c.Err)...)
	}
	return errs
}

// Clean reports whether the run finished with nothing skipped or failed.
func (r *Report) Clean() bool {
	return r.Err == nil && len(r.Warnings) == 0 && len(r.ClearErrors()) == 0
}
