package htcondor

import (
	"time"

	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/config"
	"github.com/batchq/batchq/logger"
)

// NewBackend returns a new HTCondor backend.
//
// Not implemented yet: batch.Resolve refuses to hand this backend out.
// Options are rendered as "-key value " flags.
func NewBackend(conf config.Config, opts *compute.Options, log *logger.Logger, run compute.Runner) (*compute.HPCBackend, error) {
	log.Warn("Condor cluster is untested")

	user, err := compute.UserOrCurrent(conf.User)
	if err != nil {
		return nil, err
	}
	instance, err := compute.ParseOptions(conf.HTCondor.Options)
	if err != nil {
		return nil, err
	}

	return &compute.HPCBackend{
		Name:           compute.HTCondor,
		User:           user,
		MaxJobs:        conf.MaxJobs,
		PollInterval:   time.Duration(conf.PollInterval),
		SubmitTemplate: conf.HTCondor.SubmitTemplate,
		JobsTemplate:   conf.HTCondor.JobsTemplate,
		Defaults:       instance.Update(opts),
		Mapping:        &compute.Options{},
		Log:            log,
		Runner:         run,
	}, nil
}
