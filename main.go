package main

import (
	"os"

	"github.com/batchq/batchq/cmd"
	"github.com/batchq/batchq/logger"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		logger.PrintSimpleError(err)
		os.Exit(1)
	}
}
