package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdlsoft/it3t-filing/internal/validate"
)

var (
	idNumber      string
	dateOfBirth   string
	taxRef        string
	validateInput string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the standalone SARS field checks",
	Long: `The validate command runs the checks SARS applies on receipt without
generating a file: the modulus-10 check on tax reference numbers and the
birth-date consistency check on South African ID numbers. With --input it
checks a whole exported trust aggregate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ran := false

		if validateInput != "" {
			ran = true
			agg, err := loadAggregate(validateInput)
			if err != nil {
				return err
			}
			findings := validate.CheckAggregate(agg)
			if len(findings) == 0 {
				fmt.Println("  Aggregate is fit to generate.")
			}
			for _, f := range findings {
				fmt.Printf("  ✗ %s %s: %s (%s)\n", f.Record, f.Subject, f.Message, f.Field)
			}
			if len(findings) > 0 {
				return fmt.Errorf("aggregate failed validation with %d finding(s)", len(findings))
			}
		}

		if taxRef != "" {
			ran = true
			if validate.Modulus10(taxRef) {
				fmt.Printf("  Tax reference %s: valid\n", taxRef)
			} else {
				fmt.Printf("  Tax reference %s: FAILS modulus-10 check\n", taxRef)
			}
		}

		if idNumber != "" || dateOfBirth != "" {
			ran = true
			if idNumber == "" || dateOfBirth == "" {
				return fmt.Errorf("--id and --dob must be given together")
			}
			if validate.SAIDMatchesBirthDate(idNumber, dateOfBirth) {
				fmt.Printf("  ID %s matches date of birth %s\n", idNumber, dateOfBirth)
			} else {
				fmt.Printf("  ID %s does NOT match date of birth %s\n", idNumber, dateOfBirth)
			}
		}

		if !ran {
			return fmt.Errorf("nothing to validate: pass --input, --tax-ref, or --id with --dob")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&idNumber, "id", "", "South African ID number (13 digits)")
	validateCmd.Flags().StringVar(&dateOfBirth, "dob", "", "Date of birth as YYYY-MM-DD")
	validateCmd.Flags().StringVar(&taxRef, "tax-ref", "", "Tax reference number to check")
	validateCmd.Flags().StringVar(&validateInput, "input", "", "Trust aggregate JSON file to check in full")
}
