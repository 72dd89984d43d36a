package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	profileFlag string
	jsonFlag    bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "hirectl",
	Short: "Scriptable access to recruitment dashboard chats",
	Long: `hirectl reads and posts chat messages for one configured profile without
the interactive client: fetch or watch a conversation, send a message, and
query the local cache, send log and dashboard links.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "profile name (overrides config default)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "also log to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
