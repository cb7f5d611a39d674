package compute

import (
	"context"
	"time"
)

// Backend submits shell commands to a batch system and reports how many of
// the user's jobs are queued. *HPCBackend is the only implementation; its
// variants are built by the local, lsf, slurm, and htcondor packages.
type Backend interface {
	Command(command, jobName, logFile string, opts *Options) (string, error)
	Submit(ctx context.Context, command, jobName, logFile string, opts *Options) (string, error)
	ListJobs(ctx context.Context) (string, error)
	CountJobs(ctx context.Context) (int, error)
	Throttle(ctx context.Context, maxJobs int, interval time.Duration) error
}

var _ Backend = (*HPCBackend)(nil)
