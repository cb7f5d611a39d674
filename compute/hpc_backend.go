package compute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/batchq/batchq/config"
	"github.com/batchq/batchq/logger"
	"github.com/batchq/batchq/metrics"
	"github.com/batchq/batchq/util"
	"github.com/cenkalti/backoff"
)

// DefaultPollInterval is used by Throttle when no interval is configured.
const DefaultPollInterval = config.DefaultPollInterval

// HPCBackend represents a batch backend such as LSF, Slurm, HTCondor, or the
// local shell. Variants differ only in their templates, defaults, and the
// FormatOptions/JobCounter hooks set by their constructors.
type HPCBackend struct {
	Name BackendName
	// User whose jobs are listed by JobsTemplate.
	User string
	// Throttling ceiling used by Submit. Zero disables throttling.
	MaxJobs      int
	PollInterval time.Duration
	// text/template sources for the submission and queue-listing commands.
	SubmitTemplate string
	JobsTemplate   string
	// Class and instance default options, merged. Private to this backend.
	Defaults *Options
	// Generic option keys and the backend specific keys they are renamed to.
	Mapping *Options
	// FormatOptions renders the defaults and per-call options as command
	// line flags. Defaults to MergeOptions(...).Format("-").
	FormatOptions func(defaults, opts *Options) string
	// JobCounter replaces the header-skipping line count of the queue listing.
	JobCounter func(ctx context.Context) (int, error)
	Log        *logger.Logger
	Runner     Runner
}

// MergeOptions returns a copy of defaults updated with opts.
func MergeOptions(defaults, opts *Options) *Options {
	return defaults.Clone().Update(opts)
}

func formatDashOptions(defaults, opts *Options) string {
	return MergeOptions(defaults, opts).Format("-")
}

func render(name, src string, data interface{}) (string, error) {
	tpl, err := template.New(name).Parse(src)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	if err := tpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// JobsCommand renders the queue-listing command.
func (b *HPCBackend) JobsCommand() (string, error) {
	return render(string(b.Name)+"-jobs", b.JobsTemplate, map[string]interface{}{
		"User": b.User,
	})
}

// ListJobs runs the queue-listing command, e.g. "bjobs -u <user>", and
// returns its raw output.
func (b *HPCBackend) ListJobs(ctx context.Context) (string, error) {
	cmd, err := b.JobsCommand()
	if err != nil {
		return "", err
	}
	out, err := b.Runner.Output(ctx, cmd)

	// Listing commands commonly exit non-zero for an empty queue.
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		b.Log.Debug("queue listing exited with non-zero status",
			"cmd", cmd, "status", exitErr.ExitCode, "stderr", exitErr.Stderr)
		return out, nil
	}
	return out, err
}

// CountJobs returns the number of the user's jobs in the queue.
//
// Unless JobCounter is set, this counts the non-empty lines of the queue
// listing minus one header line. It is a heuristic, not an exact count.
func (b *HPCBackend) CountJobs(ctx context.Context) (int, error) {
	if b.JobCounter != nil {
		return b.JobCounter(ctx)
	}
	out, err := b.ListJobs(ctx)
	if err != nil {
		return 0, err
	}
	return countLines(out), nil
}

func countLines(listing string) int {
	n := 0
	for _, line := range strings.Split(listing, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	// Remove header line
	if n == 0 {
		return 0
	}
	return n - 1
}

// Throttle blocks until fewer than maxJobs jobs are in the queue, polling
// CountJobs every interval. A maxJobs <= 0 falls back to b.MaxJobs; when
// neither is set Throttle returns immediately. An interval <= 0 falls back
// to b.PollInterval, then DefaultPollInterval.
//
// There is no built-in timeout. Throttle returns ctx.Err() once ctx is done.
func (b *HPCBackend) Throttle(ctx context.Context, maxJobs int, interval time.Duration) error {
	if maxJobs <= 0 {
		maxJobs = b.MaxJobs
	}
	if maxJobs <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = b.PollInterval
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	// The ticker fires immediately, then every interval. It is never
	// stopped by the backoff, so ctx alone ends the wait.
	ticker := backoff.NewTicker(backoff.NewConstantBackOff(interval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		njobs, err := b.CountJobs(ctx)
		if err != nil {
			return err
		}
		metrics.QueueJobs(string(b.Name), njobs)
		if njobs < maxJobs {
			return nil
		}
		b.Log.Info(fmt.Sprintf("%d jobs already in queue, waiting...", njobs),
			"maxJobs", maxJobs, "interval", interval)
		metrics.ThrottleWait(string(b.Name))
	}
}

// RemapOptions renames each generic option key present in opts to the
// backend specific key given by Mapping. opts is modified in place.
func (b *HPCBackend) RemapOptions(opts *Options) {
	for _, k := range b.Mapping.Keys() {
		if v, ok := opts.Pop(k); ok {
			opts.Set(b.Mapping.Value(k), v)
		}
	}
}

// Command builds the submission command line for command. Empty jobName and
// logFile are left out. opts is not modified. Nothing is run.
func (b *HPCBackend) Command(command, jobName, logFile string, opts *Options) (string, error) {
	o := opts.Clone()
	if jobName != "" {
		o.Set(JobNameKey, jobName)
	}
	if logFile != "" {
		o.Set(LogFileKey, logFile)
	}
	b.RemapOptions(o)

	format := b.FormatOptions
	if format == nil {
		format = formatDashOptions
	}
	return render(string(b.Name)+"-submit", b.SubmitTemplate, map[string]interface{}{
		"Command": command,
		"Options": format(b.Defaults, o),
		"User":    b.User,
	})
}

// Submit builds the command line, waits for room in the queue (see Throttle,
// using b.MaxJobs and b.PollInterval), and then runs the command line,
// waiting for it to finish. The exit status of the submission is logged,
// not returned. Submit returns the command line it ran.
func (b *HPCBackend) Submit(ctx context.Context, command, jobName, logFile string, opts *Options) (string, error) {
	cmd, err := b.Command(command, jobName, logFile, opts)
	if err != nil {
		return "", err
	}

	if err := b.Throttle(ctx, b.MaxJobs, b.PollInterval); err != nil {
		return "", err
	}

	log := b.Log.WithFields("submission", util.GenSubmissionID())
	log.Debug(cmd)
	status, err := b.Runner.Call(ctx, cmd)
	if err != nil {
		return "", err
	}
	metrics.Submitted(string(b.Name))
	log.Debug("submission finished", "status", status)
	return cmd, nil
}
