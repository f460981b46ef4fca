package genfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/jdlsoft/it3t-filing/internal/models"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		value   string
		want    float64
		wantErr bool
	}{
		{"1000.00", 1000, false},
		{"0", 0, false},
		{"-12.5", -12.5, false},
		{"", 0, false},
		{"None", 0, false},
		{"none", 0, false},
		{"  42.10 ", 42.10, false},
		{"R1000", 0, true},
		{"1,000.00", 0, true},
	}
	for _, tt := range tests {
		got, err := parseMoney("Amount", tt.value)
		if tt.wantErr {
			var numErr *NumericError
			if !errors.As(err, &numErr) {
				t.Errorf("parseMoney(%q): expected NumericError, got %v", tt.value, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMoney(%q) failed: %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseMoney(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{16.9, 16},
		{16.1, 16},
		{16.0, 16},
		{0, 0},
		{-3.7, -3},
	}
	for _, tt := range tests {
		if got := truncate(tt.in); got != tt.want {
			t.Errorf("truncate(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRenderTADZeroSuppression(t *testing.T) {
	line, amounts, err := renderTAD(models.TadLine{
		AmountSubjectToTax: "0",
		SourceCode:         "4216",
		ForeignTaxCredits:  "0.00",
	}, "uid-1", 3, "parent-1")
	if err != nil {
		t.Fatalf("renderTAD failed: %v", err)
	}

	fields := strings.Split(line, "|")
	if fields[6] != "" || fields[8] != "" {
		t.Errorf("zero amounts should render blank, got amount=%q credits=%q", fields[6], fields[8])
	}
	if fields[7] != "4216" {
		t.Errorf("source code lost: %q", fields[7])
	}
	if amounts != [2]float64{0, 0} {
		t.Errorf("unexpected amounts %v", amounts)
	}
}

func TestRenderTADVerbatimValue(t *testing.T) {
	// Captured values go to the file as stored, not reformatted.
	line, _, err := renderTAD(models.TadLine{
		AmountSubjectToTax: "1000.50",
		SourceCode:         "4216",
	}, "uid-1", 3, "parent-1")
	if err != nil {
		t.Fatalf("renderTAD failed: %v", err)
	}
	if strings.Split(line, "|")[6] != "1000.50" {
		t.Errorf("amount not emitted verbatim: %q", line)
	}
}

func TestRenderDNTTruncates(t *testing.T) {
	line, err := renderDNT(models.DntLine{
		LocalDividends:         "100.75",
		ExemptForeignDividends: "None",
		OtherNonTaxableIncome:  "",
	}, "uid-1", 5, "parent-1")
	if err != nil {
		t.Fatalf("renderDNT failed: %v", err)
	}
	fields := strings.Split(line, "|")
	if fields[6] != "100" || fields[7] != "0" || fields[8] != "0" {
		t.Errorf("unexpected DNT amounts: %q", line)
	}
}

func TestSumTFFAcrossRows(t *testing.T) {
	sums, err := sumTFF([]models.TffLine{
		{TotalValueOfCapitalDistributed: "100.50", TotalExpensesIncurred: "10"},
		{TotalValueOfCapitalDistributed: "200.25", TotalDonationsToTrust: "5.00"},
	})
	if err != nil {
		t.Fatalf("sumTFF failed: %v", err)
	}
	if sums[0] != 300.75 {
		t.Errorf("capital distributed sum = %v, want 300.75", sums[0])
	}
	if sums[1] != 10 || sums[2] != 5 {
		t.Errorf("unexpected sums %v", sums)
	}

	line := renderTFF(sums, "uid-1", 7, "parent-1")
	// The summed float truncates once, after addition.
	if !strings.HasSuffix(line, "|300|10|5|0|0|0|0|0") {
		t.Errorf("unexpected TFF line: %q", line)
	}
}

func TestDigitsDate(t *testing.T) {
	if got := digitsDate("1980-01-01"); got != "19800101" {
		t.Errorf("digitsDate = %q", got)
	}
	if got := digitsDate("None"); got != "" {
		t.Errorf("digitsDate(None) = %q", got)
	}
}

func TestRenderRIDefaults(t *testing.T) {
	line := renderRI(models.Trust{
		TrustRegNumber:    "IT000123",
		TrustName:         "Example Trust",
		NatureOfPerson:    "5",
		SubmissionTaxYear: "2024",
	}, "uid-1", 1)

	if !strings.Contains(line, "|ZA|") {
		t.Errorf("expected ZA residency default: %q", line)
	}
	if strings.Count(line, phonePlaceholder) != 2 {
		t.Errorf("expected placeholder contact and cell numbers: %q", line)
	}
}
