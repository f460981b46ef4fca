package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdlsoft/it3t-filing/internal/config"
	"github.com/jdlsoft/it3t-filing/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured trusts and their submission status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envDir)
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("list requires DATABASE_URL to be set")
		}

		pool, err := store.Connect(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		trusts, err := store.NewRepository(pool).ListTrusts(cmd.Context())
		if err != nil {
			return err
		}
		if len(trusts) == 0 {
			fmt.Println("No trusts captured.")
			return nil
		}

		fmt.Printf("%-6s %-12s %-40s %-8s %s\n", "ID", "REG NO", "NAME", "YEAR", "STATUS")
		for _, t := range trusts {
			fmt.Printf("%-6d %-12s %-40s %-8s %s\n",
				t.TrustID, t.TrustRegNumber, t.TrustName, t.SubmissionTaxYear, t.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
