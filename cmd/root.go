package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// envDir is where the optional .env file is loaded from.
var envDir string

var rootCmd = &cobra.Command{
	Use:   "it3t",
	Short: "IT3(t) trust submission file generator",
	Long: `it3t turns captured trust and beneficiary data into the pipe-delimited
IT3(t) flat file SARS accepts over the B2B secure file gateway, and runs the
field checks SARS applies on receipt.

Example usage:
  it3t generate --input trust.json        # Generate from an exported aggregate
  it3t generate --trust-id 7              # Generate straight from the database
  it3t validate --id 8001015009087 --dob 1980-01-01
  it3t serve                              # Expose generation over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&envDir,
		"env-dir",
		".",
		"Directory to load the optional .env file from",
	)
}
