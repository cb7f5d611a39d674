package submit

import (
	"bytes"
	"testing"

	cmdutil "github.com/batchq/batchq/cmd/util"
	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/compute/mocks"
	"github.com/batchq/batchq/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, r compute.Runner, args ...string) (string, error) {
	c, h := newCommandHooks()
	h.NewRunner = func(config.Config) compute.Runner { return r }

	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(append([]string{"--User", "alice", "--Logger.Level", "error"}, args...))
	err := c.Execute()
	return out.String(), err
}

func TestDryRun(t *testing.T) {
	r := mocks.NewRunner(t)
	out, err := execute(t, r,
		"--dry-run", "-q", "kipac-ibq", "-J", "fit", "-O", "n=8",
		"--", "python", "fit.py", "--name", "a b",
	)
	require.NoError(t, err)
	assert.Equal(t,
		`bsub -R "scratch > 1 && rhel60" -R "span[ptile=8]" -C 0 -q kipac-ibq -n 8 -J fit -W 36:00  python fit.py --name 'a b'`+"\n",
		out)
}

func TestSubmitLocal(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Call", mock.Anything, "echo hi  2>&1 | tee out.log").Return(0, nil).Once()

	out, err := execute(t, r, "-o", "out.log", "echo hi")
	require.NoError(t, err)
	assert.Equal(t, "echo hi  2>&1 | tee out.log\n", out)
}

func TestSubmitThrottled(t *testing.T) {
	r := mocks.NewRunner(t)
	r.On("Output", mock.Anything, "squeue -u alice").Return("HEADER\n1\n", nil).Once()
	r.On("Output", mock.Anything, "squeue -u alice").Return("HEADER\n", nil).Once()
	r.On("Call", mock.Anything, "sbatch --account kicp --partition kicp-ht --mem 10000  ./run.sh").Return(0, nil).Once()

	_, err := execute(t, r, "-q", "midway", "--max-jobs", "1", "--poll-interval", "10ms", "./run.sh")
	require.NoError(t, err)
}

func TestSubmitMaxJobsZeroOverridesConfig(t *testing.T) {
	fileConf := config.DefaultConfig()
	fileConf.Queue = "midway"
	fileConf.MaxJobs = 5
	tmp, cleanup := cmdutil.TempConfigFile(fileConf, "batchq.yaml")
	defer cleanup()

	// No queue listing is expected, since throttling is disabled.
	r := mocks.NewRunner(t)
	r.On("Call", mock.Anything, "sbatch --account kicp --partition kicp-ht --mem 10000  ./run.sh").Return(0, nil).Once()

	_, err := execute(t, r, "-c", tmp, "--MaxJobs", "0", "./run.sh")
	require.NoError(t, err)
}

func TestSubmitErrors(t *testing.T) {
	r := mocks.NewRunner(t)

	_, err := execute(t, r, "-q", "pbs", "run.sh")
	assert.Error(t, err)

	_, err = execute(t, r, "-q", "fnal", "run.sh")
	assert.Error(t, err)

	_, err = execute(t, r, "-O", "novalue", "run.sh")
	assert.Error(t, err)

	_, err = execute(t, r)
	assert.Error(t, err)
}

func TestJoinCommand(t *testing.T) {
	assert.Equal(t, "echo a | wc -l", joinCommand([]string{"echo a | wc -l"}))
	assert.Equal(t, "echo 'a b' c", joinCommand([]string{"echo", "a b", "c"}))
}
