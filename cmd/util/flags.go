package util

import (
	"github.com/batchq/batchq/config"
	"github.com/spf13/pflag"
)

// ConfigFlags returns a new flag set for configuring a backend.
func ConfigFlags(flagConf *config.Config, configFile *string) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVarP(configFile, "config", "c", *configFile, "Config File")

	f.AddFlagSet(selectorFlags(flagConf))
	f.AddFlagSet(throttleFlags(flagConf))
	f.AddFlagSet(loggerFlags(flagConf))
	f.AddFlagSet(metricsFlags(flagConf))

	return f
}

func selectorFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVarP(&flagConf.Queue, "Queue", "q", flagConf.Queue, "Backend, cluster, or queue name, e.g. local, slac, kipac-ibq, midway")
	f.StringVar(&flagConf.User, "User", flagConf.User, "User whose jobs are counted. Defaults to the current user")
	f.StringVar(&flagConf.Shell, "Shell", flagConf.Shell, "Shell used to run commands")

	return f
}

func throttleFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.IntVar(&flagConf.MaxJobs, "MaxJobs", flagConf.MaxJobs, "Wait while this many jobs are queued. 0 disables throttling")
	f.Var(&flagConf.PollInterval, "PollInterval", "How often to poll the queue while throttling")

	return f
}

func loggerFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVar(&flagConf.Logger.Level, "Logger.Level", flagConf.Logger.Level, "Level of logging")
	f.StringVar(&flagConf.Logger.OutputFile, "Logger.OutputFile", flagConf.Logger.OutputFile, "File path to write logs to")
	f.StringVar(&flagConf.Logger.Formatter, "Logger.Formatter", flagConf.Logger.Formatter, "Logs formatter. One of ['text', 'json']")

	return f
}

func metricsFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVar(&flagConf.Metrics.TextfilePath, "Metrics.TextfilePath", flagConf.Metrics.TextfilePath, "Write Prometheus metrics to this file")

	return f
}
