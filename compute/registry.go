package compute

import (
	"fmt"
	"strings"
)

// BackendName identifies one of the supported batch backends.
type BackendName string

// Supported backends, in resolution priority order.
const (
	Local    BackendName = "local"
	LSF      BackendName = "lsf"
	Slurm    BackendName = "slurm"
	HTCondor BackendName = "condor"
)

var backendOrder = []BackendName{Local, LSF, Slurm, HTCondor}

// Names a backend is known by, in addition to its own name.
var clusters = map[BackendName][]string{
	Local:    {"local"},
	LSF:      {"lsf", "slac", "kipac"},
	Slurm:    {"slurm", "midway", "kicp"},
	HTCondor: {"condor", "fnal"},
}

var queues = map[BackendName][]string{
	Local:    {},
	LSF:      {"express", "short", "medium", "long", "xlong", "xxl", "kipac-ibq", "bulletmpi"},
	Slurm:    {},
	HTCondor: {"local", "vanilla", "universe", "grid"},
}

// defaultQueue keys the fallback entry of the per-queue tables.
const defaultQueue = ""

// Wallclock runlimits by LSF queue (hours:minutes).
// https://confluence.slac.stanford.edu/x/OaUlCw
var runlimits = map[string]string{
	defaultQueue: "4:00",
	"express":    "0:04",
	"short":      "0:30",
	"medium":     "1:00",
	"long":       "4:00",
	"xlong":      "72:00",
	"xxl":        "168:00",
	// MPI queues
	"kipac-ibq": "36:00",
	"bulletmpi": "36:00",
}

// Extra LSF resource options for MPI (multi-processor) jobs, by queue.
// General queues have 4GB of RAM per core, so memory hungry jobs request
// more cores packed onto one host.
var mpiopts = map[string]string{
	defaultQueue: ` -R "span[ptile=4]"`,
	"local":      "",
	"short":      "",
	"medium":     "",
	"kipac-ibq":  ` -R "span[ptile=8]"`,
	"bulletmpi":  ` -R "span[ptile=16]"`,
}

// BackendNames returns all backends in resolution priority order.
func BackendNames() []BackendName {
	return append([]BackendName(nil), backendOrder...)
}

// ParseBackendName parses the canonical name of a backend.
func ParseBackendName(s string) (BackendName, error) {
	n := BackendName(strings.ToLower(s))
	if _, ok := clusters[n]; !ok {
		return "", fmt.Errorf("unknown backend: %s", s)
	}
	return n, nil
}

// ClusterAliases returns the cluster names which select the given backend.
func ClusterAliases(n BackendName) []string {
	return append([]string(nil), clusters[n]...)
}

// Queues returns the queue names belonging to the given backend.
func Queues(n BackendName) []string {
	return append([]string(nil), queues[n]...)
}

// AllQueues returns the queue names of every backend, in backend priority order.
func AllQueues() []string {
	var all []string
	for _, n := range backendOrder {
		all = append(all, queues[n]...)
	}
	return all
}

// Runlimit translates an LSF queue name to its wallclock runlimit.
// Unknown and empty queue names get the default runlimit.
func Runlimit(queue string) string {
	if r, ok := runlimits[queue]; ok {
		return r
	}
	return runlimits[defaultQueue]
}

// MPIOptions translates an LSF queue name to the resource options
// appended for multi-processor jobs.
// Unknown and empty queue names get the default placement.
func MPIOptions(queue string) string {
	if o, ok := mpiopts[queue]; ok {
		return o
	}
	return mpiopts[defaultQueue]
}
