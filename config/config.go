package config

import (
	"time"

	"github.com/batchq/batchq/logger"
)

// Config describes configuration for batchq.
type Config struct {
	// Backend, cluster, or queue name used to select the batch backend,
	// e.g. "local", "slac", "kipac-ibq", "midway".
	Queue string
	// User whose jobs are counted when throttling. Defaults to the OS user.
	User string
	// Maximum number of jobs allowed in the queue before submission blocks.
	// Zero disables throttling.
	MaxJobs int
	// How often the queue is polled while throttling.
	PollInterval Duration
	// Shell used to run submission and queue-listing commands.
	Shell string

	Logger  logger.Config
	Metrics Metrics

	// Backend specific configuration
	Local    Local
	LSF      LSF
	Slurm    Slurm
	HTCondor HTCondor
}

// Templates holds the text/template sources used to build backend command
// lines. Submit templates receive .Command, .Options, and .User; jobs
// templates receive .User.
type Templates struct {
	SubmitTemplate string
	JobsTemplate   string
}

// Local describes configuration for the local shell backend.
type Local struct {
	Templates
}

// LSF describes configuration for the LSF backend.
type LSF struct {
	// Instance default options as "key=value" entries, in order,
	// e.g. ["M=8G", "q=long"].
	Options []string
	Templates
}

// Slurm describes configuration for the Slurm backend.
type Slurm struct {
	Account   string
	Partition string
	// Memory per node. Plain numbers are megabytes; sizes such as
	// "10GiB" are converted to megabytes.
	Mem     string
	Options []string
	Templates
}

// HTCondor describes configuration for the HTCondor backend.
type HTCondor struct {
	Options []string
	Templates
}

// Metrics describes configuration for metrics export.
type Metrics struct {
	// When set, metrics are written to this file in the Prometheus text
	// format after each command, for a node_exporter textfile collector.
	TextfilePath string
}

// DefaultPollInterval is used when no poll interval is configured.
const DefaultPollInterval = time.Minute
