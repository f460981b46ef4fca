package validate

import (
	"testing"

	"github.com/jdlsoft/it3t-filing/internal/models"
)

func TestModulus10(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"0000000000", true}, // digit sum 0 divides by 10
		{"1234567897", true},
		{"1234567890", false},
		{"123456789", false},   // too short
		{"12345678901", false}, // too long
		{"123456789x", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Modulus10(tt.number); got != tt.want {
			t.Errorf("Modulus10(%q) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestSAIDMatchesBirthDate(t *testing.T) {
	tests := []struct {
		id   string
		dob  string
		want bool
	}{
		{"8001015009087", "1980-01-01", true},
		{"8001015009087", "1980-01-02", false},
		{"8001015009087", "", false},
		{"8001015009087", "not-a-date", false},
		{"800101500908", "1980-01-01", false}, // 12 digits
		{"80010150090x7", "1980-01-01", false},
		{"", "1980-01-01", false},
	}
	for _, tt := range tests {
		if got := SAIDMatchesBirthDate(tt.id, tt.dob); got != tt.want {
			t.Errorf("SAIDMatchesBirthDate(%q, %q) = %v, want %v", tt.id, tt.dob, got, tt.want)
		}
	}
}

func TestIdentificationTypeCode(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"South African Id", "001"},
		{"south african id", "001"},
		{"PASSPORT", "002"},
		{"  Passport  ", "002"},
		{"Driving Licence", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := IdentificationTypeCode(tt.label); got != tt.want {
			t.Errorf("IdentificationTypeCode(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestCheckAggregate(t *testing.T) {
	agg := &models.TrustAggregate{
		Trust: models.Trust{
			TrustRegNumber: "IT000123",
			TaxNumber:      "1234567890", // fails mod-10
		},
		Beneficiaries: []models.BeneficiaryBlock{
			{Beneficiary: models.Beneficiary{
				FirstName:   "John",
				LastName:    "Smith",
				IDNumber:    "8001015009087",
				DateOfBirth: "1990-05-05", // mismatch
			}},
		},
	}

	findings := CheckAggregate(agg)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d: %+v", len(findings), findings)
	}
	if findings[0].Record != "trust" || findings[0].Field != "TaxNumber" {
		t.Errorf("unexpected trust finding: %+v", findings[0])
	}
	if findings[1].Record != "beneficiary" || findings[1].Field != "IDNumber" {
		t.Errorf("unexpected beneficiary finding: %+v", findings[1])
	}
	if findings[1].Subject != "John Smith" {
		t.Errorf("unexpected finding subject: %q", findings[1].Subject)
	}
}

func TestCheckAggregateCleanData(t *testing.T) {
	agg := &models.TrustAggregate{
		Trust: models.Trust{
			TrustRegNumber: "IT000123",
			TaxNumber:      "0000000000",
		},
		Beneficiaries: []models.BeneficiaryBlock{
			{Beneficiary: models.Beneficiary{
				FirstName:   "John",
				LastName:    "Smith",
				IDNumber:    "8001015009087",
				DateOfBirth: "1980-01-01",
			}},
		},
	}
	if findings := CheckAggregate(agg); len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestCheckAggregateSkipsPassportHolders(t *testing.T) {
	// Passport numbers stored in the ID field must not be checked against
	// the date of birth.
	agg := &models.TrustAggregate{
		Trust: models.Trust{TrustRegNumber: "IT000123"},
		Beneficiaries: []models.BeneficiaryBlock{
			{Beneficiary: models.Beneficiary{
				FirstName:          "Erik",
				LastName:           "Larsen",
				IdentificationType: "002",
				IDNumber:           "8001015009087",
				DateOfBirth:        "1975-06-06",
			}},
		},
	}
	if findings := CheckAggregate(agg); len(findings) != 0 {
		t.Errorf("expected no findings for a passport holder, got %+v", findings)
	}
}

func TestCheckAggregateNoneMarkers(t *testing.T) {
	agg := &models.TrustAggregate{
		Trust: models.Trust{
			TrustRegNumber: "IT000123",
			TaxNumber:      "None",
		},
		Beneficiaries: []models.BeneficiaryBlock{
			{Beneficiary: models.Beneficiary{
				FirstName: "John",
				LastName:  "Smith",
				IDNumber:  "none",
			}},
		},
	}
	if findings := CheckAggregate(agg); len(findings) != 0 {
		t.Errorf("legacy None markers should validate as absent, got %+v", findings)
	}
}
