package local

import (
	"context"
	"time"

	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/config"
	"github.com/batchq/batchq/logger"
)

// NewBackend returns a new local backend, which runs commands directly in
// the shell and never throttles.
func NewBackend(conf config.Config, opts *compute.Options, log *logger.Logger, run compute.Runner) (*compute.HPCBackend, error) {
	user, err := compute.UserOrCurrent(conf.User)
	if err != nil {
		return nil, err
	}
	return &compute.HPCBackend{
		Name:           compute.Local,
		User:           user,
		MaxJobs:        conf.MaxJobs,
		PollInterval:   time.Duration(conf.PollInterval),
		SubmitTemplate: conf.Local.SubmitTemplate,
		JobsTemplate:   conf.Local.JobsTemplate,
		Defaults:       opts.Clone(),
		Mapping:        &compute.Options{},
		FormatOptions:  formatOptions,
		JobCounter:     countJobs,
		Log:            log,
		Runner:         run,
	}, nil
}

// formatOptions only understands the log file, which is written by piping
// the command through tee. Defaults and all other options are ignored.
func formatOptions(defaults, opts *compute.Options) string {
	if logFile := opts.Value(compute.LogFileKey); logFile != "" {
		return " 2>&1 | tee " + logFile
	}
	return ""
}

// Local commands run to completion before Submit returns, so nothing is
// ever queued.
func countJobs(ctx context.Context) (int, error) {
	return 0, nil
}
