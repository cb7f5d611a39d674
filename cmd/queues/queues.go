package queues

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/batchq/batchq/batch"
	"github.com/batchq/batchq/compute"
	"github.com/spf13/cobra"
)

// Cmd represents the queues command
var Cmd = &cobra.Command{
	Use:   "queues [backend]",
	Short: "List known backends, cluster aliases, and queues.",
	Long: `List the names each backend is selected by. Given a backend
(local, lsf, slurm, condor), only that backend is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backends := compute.BackendNames()
		if len(args) == 1 {
			b, err := compute.ParseBackendName(args[0])
			if err != nil {
				return err
			}
			backends = []compute.BackendName{b}
		}
		return write(cmd.OutOrStdout(), backends)
	},
}

func write(out io.Writer, backends []compute.BackendName) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "BACKEND\tNAMES")
	names := batch.Names()
	for _, b := range backends {
		fmt.Fprintf(w, "%s\t%s\n", b, strings.Join(names[b], ", "))
	}

	// Runlimits and MPI placement only apply to LSF.
	for _, b := range backends {
		if b != compute.LSF {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "QUEUE\tRUNLIMIT\tMPI OPTIONS")
		fmt.Fprintf(w, "%s\t%s\t%s\n", "(default)", compute.Runlimit(""), strings.TrimSpace(compute.MPIOptions("")))
		for _, q := range compute.Queues(compute.LSF) {
			mpi := strings.TrimSpace(compute.MPIOptions(q))
			if mpi == "" {
				mpi = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", q, compute.Runlimit(q), mpi)
		}
	}

	return w.Flush()
}
