package util

import (
	"github.com/batchq/batchq/batch"
	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/config"
	"github.com/batchq/batchq/logger"
	"github.com/batchq/batchq/metrics"
)

// NewBackend configures logging and resolves conf.Queue to a backend
// which runs its commands with run.
func NewBackend(conf config.Config, run compute.Runner) (*compute.HPCBackend, error) {
	logger.Configure(conf.Logger)
	return batch.Resolve(conf.Queue, conf, nil, logger.NewSubLogger("batchq"), run)
}

// WriteMetrics exports metrics when conf.Metrics.TextfilePath is set.
func WriteMetrics(conf config.Config) {
	if conf.Metrics.TextfilePath == "" {
		return
	}
	if err := metrics.WriteTextfile(conf.Metrics.TextfilePath); err != nil {
		logger.Error("Couldn't write metrics", "path", conf.Metrics.TextfilePath, "error", err)
	}
}
