// Package main is the entry point for the fds CLI.
package main

import (
	"github.com/fairdev/fds/cmd"
	"github.com/fairdev/fds/internal/contract"
	"github.com/fairdev/fds/internal/resultcache"
)

func main() {
	defer func() {
		_ = resultcache.Manager.Close()

		if err := cmd.StopProfiling(); err != nil {
			contract.LogFatal("Error stopping profiling", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error starting CLI", err)
	}
}
