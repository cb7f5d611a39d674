package submit

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/batchq/batchq/cmd/util"
	"github.com/batchq/batchq/compute"
	"github.com/batchq/batchq/config"
	sigutil "github.com/batchq/batchq/util"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

// NewCommand returns the submit command
func NewCommand() *cobra.Command {
	cmd, _ := newCommandHooks()
	return cmd
}

type hooks struct {
	NewRunner func(conf config.Config) compute.Runner
}

type submitFlags struct {
	jobName string
	logFile string
	opts    []string
	dryRun  bool
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
		sf         submitFlags
	)

	cmd := &cobra.Command{
		Use:   "submit [flags] -- command [args...]",
		Short: "Submit a command to a batch backend.",
		Long: `Submit a command to the backend selected by --Queue.

A single argument is passed to the shell as-is, so it may contain pipes and
redirection. Multiple arguments are quoted and joined.

When --MaxJobs is set, submission waits until fewer than MaxJobs of your
jobs are in the queue. Interrupting the wait aborts the submission.`,
		Example: `  batchq submit -q long -J fit -o fit.log -- python fit.py --seed 1
  batchq submit -q bulletmpi -O n=16 --MaxJobs 50 'mpirun ./sim > sim.out'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := util.MergeConfigFileWithFlags(configFile, flagConf, cmd.Flags())
			if err != nil {
				return fmt.Errorf("error processing config: %v", err)
			}
			return run(cmd, conf, hooks.NewRunner(conf), sf, args)
		},
	}

	cmd.SetGlobalNormalizationFunc(util.NormalizeFlags)
	f := cmd.Flags()
	f.AddFlagSet(util.ConfigFlags(&flagConf, &configFile))
	f.StringVarP(&sf.jobName, "jobname", "J", "", "Job name")
	f.StringVarP(&sf.logFile, "logfile", "o", "", "Log file for the job's output")
	f.StringArrayVarP(&sf.opts, "opt", "O", nil, "Backend option as key=value, e.g. -O W=8:00 -O n=4. May be repeated")
	f.BoolVar(&sf.dryRun, "dry-run", false, "Print the command line without running it")

	return cmd, hooks
}

func run(cmd *cobra.Command, conf config.Config, runner compute.Runner, sf submitFlags, args []string) error {
	opts, err := compute.ParseOptions(sf.opts)
	if err != nil {
		return err
	}

	backend, err := util.NewBackend(conf, runner)
	if err != nil {
		return err
	}
	defer util.WriteMetrics(conf)

	command := joinCommand(args)

	var line string
	if sf.dryRun {
		line, err = backend.Command(command, sf.jobName, sf.logFile, opts)
	} else {
		ctx, cancel := sigutil.SignalContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		line, err = backend.Submit(ctx, command, sf.jobName, sf.logFile, opts)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

func joinCommand(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return shellquote.Join(args...)
}
