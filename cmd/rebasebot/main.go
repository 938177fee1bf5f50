package main

import (
	"os"

	"rebasebot.dev/rebasebot/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("rebasebot: " + err.Error() + "\n")
		os.Exit(1)
	}
}
