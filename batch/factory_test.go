package batch

import (
	"errors"
	"testing"

	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/compute/mocks"
	"github.com/batchq/batchq/config"
	"github.com/batchq/batchq/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, name string, opts *compute.Options) (*compute.HPCBackend, error) {
	conf := config.DefaultConfig()
	conf.User = "alice"
	log := logger.NewLogger("test", logger.DefaultConfig())
	log.Discard()
	return Resolve(name, conf, opts, log, mocks.NewRunner(t))
}

func TestResolveEmptyIsLocal(t *testing.T) {
	a, err := resolve(t, "", nil)
	require.NoError(t, err)
	b, err := resolve(t, "local", nil)
	require.NoError(t, err)

	assert.Equal(t, compute.Local, a.Name)
	assert.Equal(t, b.Name, a.Name)
	assert.Equal(t, b.Defaults.Keys(), a.Defaults.Keys())
}

func TestResolveQueueSetsOption(t *testing.T) {
	b, err := resolve(t, "kipac-ibq", nil)
	require.NoError(t, err)
	assert.Equal(t, compute.LSF, b.Name)
	assert.Equal(t, "kipac-ibq", b.Defaults.Value("q"))
	assert.Equal(t, []string{"R", "C", "q"}, b.Defaults.Keys())
}

func TestResolveQueueKeepsExplicitOption(t *testing.T) {
	b, err := resolve(t, "long", compute.NewOptions("q", "xlong"))
	require.NoError(t, err)
	assert.Equal(t, "xlong", b.Defaults.Value("q"))
}

func TestResolveQueueKeepsConfiguredOption(t *testing.T) {
	conf := config.DefaultConfig()
	conf.User = "alice"
	conf.LSF.Options = []string{"M=8G", "q=xlong"}
	log := logger.NewLogger("test", logger.DefaultConfig())
	log.Discard()

	b, err := Resolve("long", conf, nil, log, mocks.NewRunner(t))
	require.NoError(t, err)
	assert.Equal(t, compute.LSF, b.Name)
	assert.Equal(t, "xlong", b.Defaults.Value("q"))

	cmd, err := b.Command("run.sh", "", "", nil)
	require.NoError(t, err)
	assert.Contains(t, cmd, "-q xlong -W 72:00 ")
}

func TestResolveCaseInsensitive(t *testing.T) {
	b, err := resolve(t, "SLAC", nil)
	require.NoError(t, err)
	assert.Equal(t, compute.LSF, b.Name)
	assert.False(t, b.Defaults.Has("q"))

	b, err = resolve(t, "Midway", nil)
	require.NoError(t, err)
	assert.Equal(t, compute.Slurm, b.Name)
}

func TestResolveClusterAliases(t *testing.T) {
	for _, name := range []string{"lsf", "slac", "kipac", "express", "bulletmpi"} {
		b, err := resolve(t, name, nil)
		require.NoError(t, err, name)
		assert.Equal(t, compute.LSF, b.Name, name)
	}
	for _, name := range []string{"slurm", "midway", "kicp"} {
		b, err := resolve(t, name, nil)
		require.NoError(t, err, name)
		assert.Equal(t, compute.Slurm, b.Name, name)
	}
}

func TestResolveLocalQueueName(t *testing.T) {
	// "local" is also a condor queue name; local wins by priority but the
	// queue option is still set.
	b, err := resolve(t, "local", nil)
	require.NoError(t, err)
	assert.Equal(t, compute.Local, b.Name)
	assert.Equal(t, "local", b.Defaults.Value("q"))
}

func TestResolveCondorNotImplemented(t *testing.T) {
	for _, name := range []string{"condor", "fnal", "vanilla"} {
		_, err := resolve(t, name, nil)
		assert.True(t, errors.Is(err, ErrNotImplemented), name)
	}
}

func TestResolveUnrecognized(t *testing.T) {
	_, err := resolve(t, "pbs", nil)
	assert.True(t, errors.Is(err, ErrUnrecognized))
	assert.Contains(t, err.Error(), "pbs")
}

func TestResolveDoesNotModifyOptions(t *testing.T) {
	opts := compute.NewOptions("M", "8G")
	_, err := resolve(t, "long", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"M"}, opts.Keys())
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"local"}, names[compute.Local])
	assert.Contains(t, names[compute.LSF], "kipac-ibq")
	assert.Contains(t, names[compute.HTCondor], "fnal")
}
