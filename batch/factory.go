// Package batch resolves cluster and queue names to batch backends.
package batch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/compute/htcondor"
	"github.com/batchq/batchq/compute/local"
	"github.com/batchq/batchq/compute/lsf"
	"github.com/batchq/batchq/compute/slurm"
	"github.com/batchq/batchq/config"
	"github.com/batchq/batchq/logger"
)

var (
	// ErrUnrecognized is returned for names which match no backend,
	// cluster, or queue.
	ErrUnrecognized = errors.New("unrecognized backend")
	// ErrNotImplemented is returned for backends which exist but may not
	// be used yet.
	ErrNotImplemented = errors.New("not implemented")
)

// Resolve returns the backend for a cluster or queue name, e.g. "slac",
// "kipac-ibq", or "midway". Names are case-insensitive and "" means "local".
// Queue names also set the "q" option, unless opts or the backend's
// configured options already set it.
//
// Backends are matched in the order local, lsf, slurm, condor. Condor is
// recognized but returns ErrNotImplemented.
func Resolve(name string, conf config.Config, opts *compute.Options, log *logger.Logger, run compute.Runner) (*compute.HPCBackend, error) {
	if name == "" {
		name = string(compute.Local)
	}
	name = strings.ToLower(name)

	backend, err := match(name)
	if err != nil {
		return nil, err
	}

	opts = opts.Clone()
	if contains(compute.AllQueues(), name) && !configSetsQueue(backend, conf) {
		opts.SetDefault("q", name)
	}

	sub := log.NewSubLogger(string(backend))
	switch backend {
	case compute.Local:
		return local.NewBackend(conf, opts, sub, run)
	case compute.LSF:
		return lsf.NewBackend(conf, opts, sub, run)
	case compute.Slurm:
		return slurm.NewBackend(conf, opts, sub, run)
	case compute.HTCondor:
		if _, err := htcondor.NewBackend(conf, opts, sub, run); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("condor cluster: %w", ErrNotImplemented)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnrecognized, name)
}

// match finds the first backend whose cluster aliases or queues include name.
func match(name string) (compute.BackendName, error) {
	for _, b := range compute.BackendNames() {
		if contains(compute.ClusterAliases(b), name) || contains(compute.Queues(b), name) {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnrecognized, name)
}

// Names returns every name Resolve accepts for each backend, aliases first.
func Names() map[compute.BackendName][]string {
	names := map[compute.BackendName][]string{}
	for _, b := range compute.BackendNames() {
		names[b] = append(compute.ClusterAliases(b), compute.Queues(b)...)
	}
	return names
}

// configSetsQueue reports whether the configured instance options of the
// backend include "q".
func configSetsQueue(backend compute.BackendName, conf config.Config) bool {
	var entries []string
	switch backend {
	case compute.LSF:
		entries = conf.LSF.Options
	case compute.Slurm:
		entries = conf.Slurm.Options
	case compute.HTCondor:
		entries = conf.HTCondor.Options
	}
	for _, e := range entries {
		if k, _, _ := strings.Cut(e, "="); k == "q" {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
