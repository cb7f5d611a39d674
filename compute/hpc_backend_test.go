package compute

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/batchq/batchq/compute/mocks"
	"github.com/batchq/batchq/config"
	"github.com/batchq/batchq/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const jobsCmd = "jobs -u alice"

func newTestBackend(r Runner) *HPCBackend {
	log := logger.NewLogger("test", logger.DebugConfig())
	log.Discard()
	return &HPCBackend{
		Name:           "test",
		User:           "alice",
		PollInterval:   time.Millisecond * 10,
		SubmitTemplate: "submit {{.Options}} {{.Command}}",
		JobsTemplate:   "jobs -u {{.User}}",
		Defaults:       NewOptions("a", "1"),
		Mapping:        NewOptions(JobNameKey, "J", LogFileKey, "oo"),
		Log:            log,
		Runner:         r,
	}
}

func TestCountJobs(t *testing.T) {
	tests := []struct {
		listing string
		count   int
	}{
		{"", 0},
		{"JOBID USER STAT\n", 0},
		{"JOBID USER STAT\n1 alice RUN\n2 alice PEND\n", 2},
		{"JOBID USER STAT\n\n1 alice RUN\n   \n2 alice PEND", 2},
		{"\n\n", 0},
	}
	for _, tt := range tests {
		r := mocks.NewRunner(t)
		r.On("Output", mock.Anything, jobsCmd).Return(tt.listing, nil).Once()
		b := newTestBackend(r)

		n, err := b.CountJobs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tt.count, n, "listing %q", tt.listing)
	}
}

func TestCountJobsNonZeroExit(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, jobsCmd).
		Return("", &ExitError{Command: jobsCmd, ExitCode: 255, Stderr: "No unfinished job found"})
	b := newTestBackend(r)

	n, err := b.CountJobs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCountJobsLaunchFailure(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, jobsCmd).Return("", errors.New("no such file"))
	b := newTestBackend(r)

	_, err := b.CountJobs(context.Background())
	assert.Error(t, err)
}

func TestCountJobsCounter(t *testing.T) {
	// No runner calls are expected.
	b := newTestBackend(mocks.NewRunner(t))
	b.JobCounter = func(context.Context) (int, error) { return 0, nil }

	n, err := b.CountJobs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDefaultPollIntervalMatchesConfig(t *testing.T) {
	assert.Equal(t, time.Duration(config.DefaultConfig().PollInterval), DefaultPollInterval)
}

func TestThrottleNoCeiling(t *testing.T) {
	b := newTestBackend(mocks.NewRunner(t))
	assert.NoError(t, b.Throttle(context.Background(), 0, 0))
}

func TestThrottleBlocksUntilDrained(t *testing.T) {
	r := mocks.NewRunner(t)
	full := "HEADER\n1\n2\n3\n"
	r.On("Output", mock.Anything, jobsCmd).Return(full, nil).Twice()
	r.On("Output", mock.Anything, jobsCmd).Return("HEADER\n1\n", nil).Once()

	b := newTestBackend(r)
	b.MaxJobs = 2

	start := time.Now()
	err := b.Throttle(context.Background(), 0, 0)
	assert.NoError(t, err)
	// Two waits of one poll interval each.
	assert.True(t, time.Since(start) >= 2*b.PollInterval)
	r.AssertNumberOfCalls(t, "Output", 3)
}

func TestThrottleArgumentOverridesInstance(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, jobsCmd).Return("HEADER\n1\n2\n", nil).Once()

	b := newTestBackend(r)
	b.MaxJobs = 1

	// 2 jobs < 5, returns after a single poll.
	assert.NoError(t, b.Throttle(context.Background(), 5, time.Hour))
}

func TestThrottleCancel(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, jobsCmd).Return("HEADER\n1\n2\n3\n", nil)

	b := newTestBackend(r)
	b.MaxJobs = 2

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()
	err := b.Throttle(ctx, 0, 0)
	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestThrottleDeadlineShorterThanInterval(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, jobsCmd).Return("HEADER\n1\n2\n3\n", nil).Once()

	b := newTestBackend(r)
	b.MaxJobs = 2

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := b.Throttle(ctx, 0, time.Second)
	assert.Equal(t, context.DeadlineExceeded, err)
	assert.True(t, time.Since(start) >= 200*time.Millisecond)
	r.AssertNumberOfCalls(t, "Output", 1)
}

func TestRemapOptions(t *testing.T) {
	b := newTestBackend(nil)
	o := NewOptions(LogFileKey, "out.log", "n", "4", JobNameKey, "j1")
	b.RemapOptions(o)
	assert.Equal(t, []string{"n", "J", "oo"}, o.Keys())
	assert.Equal(t, "j1", o.Value("J"))
	assert.Equal(t, "out.log", o.Value("oo"))
}

func TestCommand(t *testing.T) {
	b := newTestBackend(nil)
	opts := NewOptions("b", "2")

	cmd, err := b.Command("run.sh", "j1", "", opts)
	require.NoError(t, err)
	assert.Equal(t, "submit -a 1 -b 2 -J j1  run.sh", cmd)

	// The caller's options are not modified.
	assert.Equal(t, []string{"b"}, opts.Keys())
}

func TestCommandLayering(t *testing.T) {
	b := newTestBackend(nil)
	cmd, err := b.Command("run.sh", "", "", NewOptions("a", "9"))
	require.NoError(t, err)
	assert.Equal(t, "submit -a 9  run.sh", cmd)

	cmd, err = b.Command("run.sh", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "submit -a 1  run.sh", cmd)
}

func TestCommandBadTemplate(t *testing.T) {
	b := newTestBackend(nil)
	b.SubmitTemplate = "submit {{.Options"
	_, err := b.Command("run.sh", "", "", nil)
	assert.Error(t, err)
}

func TestSubmit(t *testing.T) {
	expected := "submit -a 1 -J j1 -oo out.log  run.sh"
	r := mocks.NewRunner(t)
	r.On("Call", mock.Anything, expected).Return(0, nil).Once()

	b := newTestBackend(r)
	cmd, err := b.Submit(context.Background(), "run.sh", "j1", "out.log", nil)
	require.NoError(t, err)
	assert.Equal(t, expected, cmd)
}

func TestSubmitIgnoresExitStatus(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Call", mock.Anything, "submit -a 1  false").Return(1, nil).Once()

	b := newTestBackend(r)
	cmd, err := b.Submit(context.Background(), "false", "", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, "submit -a 1  false", cmd)
}

func TestSubmitLaunchFailure(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Call", mock.Anything, mock.Anything).Return(-1, errors.New("no shell")).Once()

	b := newTestBackend(r)
	_, err := b.Submit(context.Background(), "run.sh", "", "", nil)
	assert.Error(t, err)
}

func TestSubmitThrottles(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, jobsCmd).Return("HEADER\n1\n2\n", nil).Once()
	r.On("Output", mock.Anything, jobsCmd).Return("HEADER\n", nil).Once()
	r.On("Call", mock.Anything, "submit -a 1  run.sh").Return(0, nil).Once()

	b := newTestBackend(r)
	b.MaxJobs = 2

	_, err := b.Submit(context.Background(), "run.sh", "", "", nil)
	assert.NoError(t, err)
}

func TestSubmitCanceledWhileThrottled(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, jobsCmd).Return("HEADER\n1\n2\n", nil)

	b := newTestBackend(r)
	b.MaxJobs = 1

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(time.Millisecond * 30)
		cancel()
	}()
	_, err := b.Submit(ctx, "run.sh", "", "", nil)
	assert.Equal(t, context.Canceled, err)
	r.AssertNotCalled(t, "Call", mock.Anything, mock.Anything)
}
