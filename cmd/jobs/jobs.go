package jobs

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/batchq/batchq/cmd/util"
	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/config"
	sigutil "github.com/batchq/batchq/util"
	"github.com/spf13/cobra"
)

// NewCommand returns the jobs command
func NewCommand() *cobra.Command {
	cmd, _ := newCommandHooks()
	return cmd
}

type hooks struct {
	NewRunner func(conf config.Config) compute.Runner
}

func newCommandHooks() (*cobra.Command, *hooks) {
	hooks := &hooks{
		NewRunner: func(conf config.Config) compute.Runner {
			return compute.NewShellRunner(conf.Shell)
		},
	}

	var (
		configFile string
		flagConf   config.Config
		count      bool
	)

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List your jobs in a backend's queue.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := util.MergeConfigFileWithFlags(configFile, flagConf, cmd.Flags())
			if err != nil {
				return fmt.Errorf("error processing config: %v", err)
			}

			backend, err := util.NewBackend(conf, hooks.NewRunner(conf))
			if err != nil {
				return err
			}
			defer util.WriteMetrics(conf)

			ctx, cancel := sigutil.SignalContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if count {
				n, err := backend.CountJobs(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			}

			out, err := backend.ListJobs(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.SetGlobalNormalizationFunc(util.NormalizeFlags)
	f := cmd.Flags()
	f.AddFlagSet(util.ConfigFlags(&flagConf, &configFile))
	f.BoolVar(&count, "count", false, "Print only the number of jobs")

	return cmd, hooks
}
