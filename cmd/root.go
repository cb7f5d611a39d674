// Package cmd contains the batchq CLI commands.
package cmd

import (
	"github.com/batchq/batchq/cmd/jobs"
	"github.com/batchq/batchq/cmd/queues"
	"github.com/batchq/batchq/cmd/submit"
	"github.com/batchq/batchq/cmd/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:           "batchq",
	Short:         "Submit and throttle jobs on local, LSF, and Slurm backends.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	RootCmd.AddCommand(completionCmd)
	RootCmd.AddCommand(genMarkdownCmd)
	RootCmd.AddCommand(jobs.NewCommand())
	RootCmd.AddCommand(queues.Cmd)
	RootCmd.AddCommand(submit.NewCommand())
	RootCmd.AddCommand(version.Cmd)
}
