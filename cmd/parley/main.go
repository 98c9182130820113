package main

import (
	"os"

	"github.com/spf13/cobra"

	chatcmder "github.com/parleyhq/parley/cmd/parley/chat"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:          "parley",
		Short:        "Minimal chat client for hosted text-generation models",
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(chatcmder.NewChatCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
