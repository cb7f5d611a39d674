package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/batchq/batchq/config"
	"github.com/imdario/mergo"
	"github.com/spf13/pflag"
)

func normalize(name string) string {
	for _, sep := range []string{"-", "_", "."} {
		name = strings.Replace(name, sep, "", -1)
	}
	return strings.ToLower(name)
}

// NormalizeFlags allows for flags to be case and separator insensitive,
// so "--max-jobs", "--max_jobs", and "--MaxJobs" are the same flag.
// Use it by passing it to cobra.Command.SetGlobalNormalizationFunc
func NormalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	lookup := map[string]string{"help": "help", normalize(name): name}

	f.VisitAll(func(f *pflag.Flag) {
		lookup[normalize(f.Name)] = f.Name
	})

	return pflag.NormalizedName(lookup[normalize(name)])
}

// MergeConfigFileWithFlags loads the config file, if any, over the default
// config and then applies the values set by flags. Flag values override
// values in the config file.
//
// mergo skips zero values, so when f is given, flags in zeroFlags which were
// set explicitly (e.g. "--MaxJobs 0") are applied even when zero.
func MergeConfigFileWithFlags(file string, flagConf config.Config, f *pflag.FlagSet) (config.Config, error) {
	conf := config.DefaultConfig()
	err := config.ParseFile(file, &conf)
	if err != nil {
		return conf, err
	}

	// file vals <- cli val
	err = mergo.MergeWithOverwrite(&conf, flagConf)
	if err != nil {
		return conf, err
	}

	if f != nil {
		for name, apply := range zeroFlags {
			if fl := f.Lookup(name); fl != nil && fl.Changed {
				apply(&conf, flagConf)
			}
		}
	}

	return conf, config.Validate(conf)
}

// zeroFlags are the flags whose zero value means something: no throttling,
// the default poll interval, the current user, or no output file.
var zeroFlags = map[string]func(dst *config.Config, src config.Config){
	"MaxJobs":              func(dst *config.Config, src config.Config) { dst.MaxJobs = src.MaxJobs },
	"PollInterval":         func(dst *config.Config, src config.Config) { dst.PollInterval = src.PollInterval },
	"User":                 func(dst *config.Config, src config.Config) { dst.User = src.User },
	"Logger.OutputFile":    func(dst *config.Config, src config.Config) { dst.Logger.OutputFile = src.Logger.OutputFile },
	"Metrics.TextfilePath": func(dst *config.Config, src config.Config) { dst.Metrics.TextfilePath = src.Metrics.TextfilePath },
}

// TempConfigFile writes the configuration to a temporary file.
// Returns:
// - "path" is the path of the file.
// - "cleanup" can be called to remove the temporary file.
func TempConfigFile(c config.Config, name string) (path string, cleanup func()) {
	tmpdir, err := os.MkdirTemp("", "batchq-config")
	if err != nil {
		panic(err)
	}

	cleanup = func() {
		os.RemoveAll(tmpdir)
	}

	p := filepath.Join(tmpdir, name)
	err = config.ToYamlFile(c, p)
	if err != nil {
		panic(err)
	}
	return p, cleanup
}
