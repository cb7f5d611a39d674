package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/alecthomas/units"
	"github.com/ghodss/yaml"
	"github.com/hashicorp/go-multierror"
)

// ToYaml formats the configuration into YAML and returns the bytes.
func ToYaml(c Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// ToYamlFile writes the configuration to a YAML file.
func ToYamlFile(c Config, path string) error {
	b, err := ToYaml(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}

// Parse parses a YAML doc into the given Config instance.
func Parse(raw []byte, conf *Config) error {
	if err := yaml.Unmarshal(raw, conf); err != nil {
		return err
	}
	return Validate(*conf)
}

// ParseFile parses a batchq config file, which is formatted in YAML,
// and returns a Config struct.
func ParseFile(relpath string, conf *Config) error {
	if relpath == "" {
		return nil
	}

	// Try to get absolute path. If it fails, fall back to relative path.
	path, abserr := filepath.Abs(relpath)
	if abserr != nil {
		path = relpath
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config at path %s: \n%v", path, err)
	}

	err = Parse(source, conf)
	if err != nil {
		return fmt.Errorf("failed to parse config at path %s: %v", path, err)
	}
	return nil
}

// Validate checks the config for values which would only fail later,
// at submission time. All problems are reported together.
func Validate(c Config) error {
	var result *multierror.Error

	if c.MaxJobs < 0 {
		result = multierror.Append(result, fmt.Errorf("MaxJobs must be >= 0, got %d", c.MaxJobs))
	}
	if c.PollInterval < 0 {
		result = multierror.Append(result, fmt.Errorf("PollInterval must not be negative, got %s", &c.PollInterval))
	}

	templates := map[string]Templates{
		"Local":    c.Local.Templates,
		"LSF":      c.LSF.Templates,
		"Slurm":    c.Slurm.Templates,
		"HTCondor": c.HTCondor.Templates,
	}
	for _, name := range []string{"Local", "LSF", "Slurm", "HTCondor"} {
		t := templates[name]
		if _, err := template.New(name).Parse(t.SubmitTemplate); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s.SubmitTemplate: %v", name, err))
		}
		if _, err := template.New(name).Parse(t.JobsTemplate); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s.JobsTemplate: %v", name, err))
		}
	}

	options := map[string][]string{
		"LSF":      c.LSF.Options,
		"Slurm":    c.Slurm.Options,
		"HTCondor": c.HTCondor.Options,
	}
	for _, name := range []string{"LSF", "Slurm", "HTCondor"} {
		for _, kv := range options[name] {
			if k, _, ok := strings.Cut(kv, "="); !ok || k == "" {
				result = multierror.Append(result, fmt.Errorf("%s.Options: expected key=value, got %q", name, kv))
			}
		}
	}

	if _, err := ParseMemoryMB(c.Slurm.Mem); err != nil {
		result = multierror.Append(result, fmt.Errorf("Slurm.Mem: %v", err))
	}

	return result.ErrorOrNil()
}

// ParseMemoryMB converts a memory size to a whole number of megabytes.
// Plain integers are already megabytes and are returned unchanged.
// An empty string is returned as-is.
func ParseMemoryMB(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := strconv.Atoi(s); err == nil {
		return s, nil
	}
	b, err := units.ParseBase2Bytes(s)
	if err != nil {
		return "", err
	}
	mb := int64(b / units.MiB)
	if mb < 1 {
		return "", fmt.Errorf("memory size %q is less than 1MB", s)
	}
	return strconv.FormatInt(mb, 10), nil
}
