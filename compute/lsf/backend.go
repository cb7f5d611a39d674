package lsf

import (
	"time"

	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/config"
	"github.com/batchq/batchq/logger"
)

// classDefaults are the options every LSF submission starts from.
// The resource selector keeps its own double quotes.
func classDefaults() *compute.Options {
	o := compute.NewOptions("R", `"scratch > 1 && rhel60"`)
	o.SetInt("C", 0)
	return o
}

// NewBackend returns a new LSF backend, which submits with "bsub".
// Instance defaults come from conf.LSF.Options followed by opts.
func NewBackend(conf config.Config, opts *compute.Options, log *logger.Logger, run compute.Runner) (*compute.HPCBackend, error) {
	user, err := compute.UserOrCurrent(conf.User)
	if err != nil {
		return nil, err
	}
	instance, err := compute.ParseOptions(conf.LSF.Options)
	if err != nil {
		return nil, err
	}

	return &compute.HPCBackend{
		Name:           compute.LSF,
		User:           user,
		MaxJobs:        conf.MaxJobs,
		PollInterval:   time.Duration(conf.PollInterval),
		SubmitTemplate: conf.LSF.SubmitTemplate,
		JobsTemplate:   conf.LSF.JobsTemplate,
		Defaults:       classDefaults().Update(instance).Update(opts),
		Mapping: compute.NewOptions(
			compute.JobNameKey, "J",
			compute.LogFileKey, "oo",
		),
		FormatOptions: formatOptions,
		Log:           log,
		Runner:        run,
	}, nil
}

// formatOptions renders "-key value " flags. Multi-processor jobs ("-n")
// get the queue's MPI placement appended to the resource selector, and jobs
// without a wallclock limit ("-W") get the queue's runlimit.
func formatOptions(defaults, opts *compute.Options) string {
	options := compute.MergeOptions(defaults, opts)
	queue := options.Value("q")
	if options.Has("n") {
		options.Set("R", options.Value("R")+compute.MPIOptions(queue))
	}
	options.SetDefault("W", compute.Runlimit(queue))
	return options.Format("-")
}
