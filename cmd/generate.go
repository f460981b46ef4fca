package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdlsoft/it3t-filing/internal/config"
	"github.com/jdlsoft/it3t-filing/internal/genfile"
	"github.com/jdlsoft/it3t-filing/internal/models"
	"github.com/jdlsoft/it3t-filing/internal/store"
	"github.com/jdlsoft/it3t-filing/internal/validate"
	"github.com/jdlsoft/it3t-filing/internal/writer"
)

var (
	inputPath  string
	trustID    int64
	ghUniqueID string
	outputDir  string
	toStdout   bool
	markDone   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the IT3(t) submission file for a trust",
	Long: `The generate command builds the SARS IT3(t) flat file for one trust.

The trust aggregate comes either from a JSON export (--input) or straight
from the configured database (--trust-id). The file is validated for
ISO-8859-1 encodability and written into the archive layout
<output dir>/<tax year>/<trust name>/ unless --stdout is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&inputPath, "input", "", "Path to a trust aggregate JSON file")
	generateCmd.Flags().Int64Var(&trustID, "trust-id", 0, "Trust ID to load from the database")
	generateCmd.Flags().StringVar(&ghUniqueID, "gh-unique-id", "", "Unique file ID for the GH header (generated if omitted)")
	generateCmd.Flags().StringVar(&outputDir, "output", "", "Archive root directory (overrides OUTPUT_DIR)")
	generateCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the file content to stdout instead of disk")
	generateCmd.Flags().BoolVar(&markDone, "mark-submitted", false, "Advance the trust status after generation (with --trust-id)")
}

func runGenerate(ctx context.Context) error {
	cfg, err := config.Load(envDir)
	if err != nil {
		return err
	}

	submitter := cfg.Submitter()

	var agg *models.TrustAggregate
	var repo *store.Repository
	switch {
	case inputPath != "" && trustID != 0:
		return fmt.Errorf("--input and --trust-id are mutually exclusive")
	case inputPath != "":
		if agg, err = loadAggregate(inputPath); err != nil {
			return err
		}
	case trustID != 0:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--trust-id requires DATABASE_URL to be set")
		}
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = store.NewRepository(pool)

		if agg, err = repo.LoadTrustAggregate(ctx, trustID); err != nil {
			return err
		}
		if s, ok, err := repo.LatestSubmission(ctx, trustID); err != nil {
			return err
		} else if ok {
			submitter = s
		}
	default:
		return fmt.Errorf("either --input or --trust-id is required")
	}

	if findings := validate.CheckAggregate(agg); len(findings) > 0 {
		for _, f := range findings {
			fmt.Fprintf(os.Stderr, "  ✗ %s %s: %s (%s)\n", f.Record, f.Subject, f.Message, f.Field)
		}
		return fmt.Errorf("aggregate failed validation with %d finding(s)", len(findings))
	}

	res, err := genfile.Generate(agg, genfile.Options{
		GHUniqueID:        ghUniqueID,
		TestDataIndicator: cfg.TestDataIndicator,
		Submitter:         submitter,
		Entity:            cfg.Entity(),
	})
	if err != nil {
		return err
	}

	if toStdout {
		fmt.Println(res.Content)
	} else {
		dir := cfg.OutputDir
		if outputDir != "" {
			dir = outputDir
		}
		w := &writer.FlatFileWriter{OutputDir: dir}
		path, err := w.WriteToFile(res)
		if err != nil {
			return err
		}
		fmt.Printf("  Output: %s\n", path)
	}

	fmt.Printf("  Trust:          %s (%s)\n", res.Trust.TrustName, res.Trust.TrustRegNumber)
	fmt.Printf("  Beneficiaries:  %d\n", res.DPBCount)
	fmt.Printf("  TAD records:    %d\n", res.TADCount)
	fmt.Printf("  TFF records:    %d\n", res.TFFCount)
	fmt.Printf("  Total amount:   %d.00\n", res.TotalAmount)

	if markDone {
		if repo == nil {
			return fmt.Errorf("--mark-submitted only applies with --trust-id")
		}
		if err := repo.MarkSubmitted(ctx, trustID); err != nil {
			return err
		}
		fmt.Printf("  Status:         %s\n", models.StatusSubmittedToSARS)
	}

	fmt.Println("  Done.")
	return nil
}

// loadAggregate reads a trust aggregate from a JSON export.
func loadAggregate(path string) (*models.TrustAggregate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	var agg models.TrustAggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, fmt.Errorf("invalid trust aggregate in %q: %w", path, err)
	}
	return &agg, nil
}
