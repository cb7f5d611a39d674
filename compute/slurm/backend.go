package slurm

import (
	"fmt"
	"time"

	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/config"
	"github.com/batchq/batchq/logger"
)

func classDefaults() *compute.Options {
	o := compute.NewOptions("account", "kicp", "partition", "kicp-ht")
	o.SetInt("mem", 10000)
	return o
}

// NewBackend returns a new Slurm backend, which submits with "sbatch".
// Instance defaults come from conf.Slurm (Account, Partition, Mem, then
// Options) followed by opts.
func NewBackend(conf config.Config, opts *compute.Options, log *logger.Logger, run compute.Runner) (*compute.HPCBackend, error) {
	log.Warn("Slurm cluster is untested")

	user, err := compute.UserOrCurrent(conf.User)
	if err != nil {
		return nil, err
	}

	instance := &compute.Options{}
	if conf.Slurm.Account != "" {
		instance.Set("account", conf.Slurm.Account)
	}
	if conf.Slurm.Partition != "" {
		instance.Set("partition", conf.Slurm.Partition)
	}
	mem, err := config.ParseMemoryMB(conf.Slurm.Mem)
	if err != nil {
		return nil, fmt.Errorf("Slurm.Mem: %v", err)
	}
	if mem != "" {
		instance.Set("mem", mem)
	}
	extra, err := compute.ParseOptions(conf.Slurm.Options)
	if err != nil {
		return nil, err
	}
	instance.Update(extra)

	return &compute.HPCBackend{
		Name:           compute.Slurm,
		User:           user,
		MaxJobs:        conf.MaxJobs,
		PollInterval:   time.Duration(conf.PollInterval),
		SubmitTemplate: conf.Slurm.SubmitTemplate,
		JobsTemplate:   conf.Slurm.JobsTemplate,
		Defaults:       classDefaults().Update(instance).Update(opts),
		Mapping:        &compute.Options{},
		FormatOptions:  formatOptions,
		Log:            log,
		Runner:         run,
	}, nil
}

// formatOptions renders "--key value " flags.
func formatOptions(defaults, opts *compute.Options) string {
	return compute.MergeOptions(defaults, opts).Format("--")
}
