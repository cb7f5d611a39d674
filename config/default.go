package config

import (
	"github.com/batchq/batchq/logger"
)

// DefaultConfig returns configuration with simple defaults.
func DefaultConfig() Config {
	c := Config{
		Queue:        "local",
		PollInterval: Duration(DefaultPollInterval),
		Shell:        "/bin/sh",
		Logger:       logger.DefaultConfig(),
	}

	c.Local.Templates = Templates{
		SubmitTemplate: localSubmitTemplate,
		JobsTemplate:   localJobsTemplate,
	}
	c.LSF.Templates = Templates{
		SubmitTemplate: lsfSubmitTemplate,
		JobsTemplate:   lsfJobsTemplate,
	}
	c.Slurm.Templates = Templates{
		SubmitTemplate: slurmSubmitTemplate,
		JobsTemplate:   slurmJobsTemplate,
	}
	c.HTCondor.Templates = Templates{
		SubmitTemplate: condorSubmitTemplate,
		JobsTemplate:   condorJobsTemplate,
	}

	return c
}
