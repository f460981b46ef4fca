package genfile

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jdlsoft/it3t-filing/internal/models"
)

// fixedOptions returns options with a pinned clock and a counting UID source
// so every run produces identical output.
func fixedOptions() Options {
	n := 0
	return Options{
		GHUniqueID: "GH-FIXED-0001",
		Now:        time.Date(2024, 9, 15, 10, 30, 0, 0, time.UTC),
		NewUID: func() string {
			n++
			return fmt.Sprintf("uid-%04d", n)
		},
		TestDataIndicator: "T",
		Submitter: models.Submitter{
			SoftwareName:     "GreatSoft",
			SoftwareVersion:  "2024.3.1",
			ContactFirstName: "Karin",
			ContactLastName:  "Roux",
			SecurityToken:    "TOKEN",
		},
		Entity: models.SubmittingEntity{
			Nature:         "INDIVIDUAL",
			Surname:        "Pienaar",
			PracticeNumber: "1517179642",
		},
	}
}

func basicAggregate() *models.TrustAggregate {
	return &models.TrustAggregate{
		Trust: models.Trust{
			TrustID:           1,
			TrustRegNumber:    "IT000123",
			TrustName:         "Example Family Trust",
			NatureOfPerson:    "5",
			SubmissionTaxYear: "2024",
		},
		Beneficiaries: []models.BeneficiaryBlock{
			{
				Beneficiary: models.Beneficiary{
					BeneficiaryID:  10,
					TrustID:        1,
					LastName:       "Smith",
					FirstName:      "John",
					NatureOfPerson: "1",
					IsBeneficiary:  true,
				},
				TADs: []models.TadLine{
					{AmountSubjectToTax: "1000.00", SourceCode: "4216", ForeignTaxCredits: "0"},
				},
			},
		},
	}
}

func TestGenerateBasicFile(t *testing.T) {
	res, err := Generate(basicAggregate(), fixedOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	lines := strings.Split(res.Content, "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines (GH, SE, RI, DPB, TAD, TFF, T), got %d:\n%s", len(lines), res.Content)
	}

	if !strings.HasPrefix(lines[0], "H|GH|2024-09-15T10:30:00|1|GH-FIXED-0001|") {
		t.Errorf("unexpected GH line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "H|SE|2024|2023-03-01|2024-02-28|INDIVIDUAL|Pienaar|") {
		t.Errorf("unexpected SE line: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "B|RI|N|uid-0001|1|5|Example Family Trust|IT000123|") {
		t.Errorf("unexpected RI line: %q", lines[2])
	}
	if !strings.Contains(lines[3], "|DPB|N|") {
		t.Errorf("expected DPB at line 4, got %q", lines[3])
	}

	// Zero foreign tax credits must render blank, not "0".
	if !strings.HasSuffix(lines[4], "|1000.00|4216|") {
		t.Errorf("unexpected TAD tail: %q", lines[4])
	}

	// TFF is emitted even with no captured flow rows.
	if !strings.Contains(lines[5], "|TFF|N|") {
		t.Errorf("expected TFF at line 6, got %q", lines[5])
	}
	if !strings.HasSuffix(lines[5], "|0|0|0|0|0|0|0|0") {
		t.Errorf("expected all-zero flows, got %q", lines[5])
	}

	trailer := strings.Split(lines[6], "|")
	if len(trailer) != 4 || trailer[0] != "T" {
		t.Fatalf("malformed trailer: %q", lines[6])
	}
	if trailer[1] != "4" {
		t.Errorf("expected last sequence 4, got %s", trailer[1])
	}
	if trailer[3] != "1000.00" {
		t.Errorf("expected total 1000.00, got %s", trailer[3])
	}

	if res.DPBCount != 1 || res.TADCount != 1 || res.TotalAmount != 1000 {
		t.Errorf("unexpected counters: dpb=%d tad=%d total=%d",
			res.DPBCount, res.TADCount, res.TotalAmount)
	}
}

func TestGenerateTrailerHash(t *testing.T) {
	res, err := Generate(basicAggregate(), fixedOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	lines := strings.Split(res.Content, "\n")
	body := strings.Join(lines[:len(lines)-1], "")
	digest := md5.Sum([]byte(body))
	want := hex.EncodeToString(digest[:])

	got := strings.Split(lines[len(lines)-1], "|")[2]
	if got != want {
		t.Errorf("trailer hash %s does not match body hash %s", got, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(basicAggregate(), fixedOptions())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := Generate(basicAggregate(), fixedOptions())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if a.Content != b.Content {
		t.Error("identical inputs produced different content")
	}
	if a.Filename != b.Filename {
		t.Errorf("identical inputs produced different filenames: %q vs %q", a.Filename, b.Filename)
	}
}

func TestGenerateSequenceNumbers(t *testing.T) {
	agg := basicAggregate()
	agg.Beneficiaries = append(agg.Beneficiaries, models.BeneficiaryBlock{
		Beneficiary: models.Beneficiary{
			LastName:             "Jones",
			FirstName:            "Mary",
			NatureOfPerson:       "1",
			HasNonTaxableAmounts: true,
		},
		TADs: []models.TadLine{
			{AmountSubjectToTax: "250.50", SourceCode: "4217"},
			{AmountSubjectToTax: "99.99", SourceCode: "4218"},
		},
		DNTs: []models.DntLine{{LocalDividends: "50.00"}},
	})

	res, err := Generate(agg, fixedOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	lines := strings.Split(res.Content, "\n")
	want := 1
	for _, line := range lines[2 : len(lines)-1] {
		seq, err := strconv.Atoi(strings.Split(line, "|")[4])
		if err != nil {
			t.Fatalf("bad sequence field in %q: %v", line, err)
		}
		if seq != want {
			t.Errorf("expected sequence %d, got %d in %q", want, seq, line)
		}
		want++
	}

	trailerSeq := strings.Split(lines[len(lines)-1], "|")[1]
	if trailerSeq != strconv.Itoa(want-1) {
		t.Errorf("trailer sequence %s, expected %d", trailerSeq, want-1)
	}
}

func TestGenerateDNTOnlyWhenFlagged(t *testing.T) {
	agg := basicAggregate()
	agg.Beneficiaries[0].DNTs = []models.DntLine{{LocalDividends: "500.00"}}
	agg.Beneficiaries[0].Beneficiary.HasNonTaxableAmounts = false

	res, err := Generate(agg, fixedOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(res.Content, "|DNT|") {
		t.Error("DNT line emitted although the beneficiary flag is off")
	}
	// The captured amount still counts toward the trailer total.
	if res.TotalAmount != 1500 {
		t.Errorf("expected total 1500, got %d", res.TotalAmount)
	}

	agg.Beneficiaries[0].Beneficiary.HasNonTaxableAmounts = true
	res, err = Generate(agg, fixedOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(res.Content, "|DNT|N|") {
		t.Error("expected a DNT line for a flagged beneficiary")
	}
	if res.TotalAmount != 1500 {
		t.Errorf("expected total 1500, got %d", res.TotalAmount)
	}
}

func TestGenerateTotalTruncation(t *testing.T) {
	agg := basicAggregate()
	agg.Beneficiaries[0].TADs = []models.TadLine{
		{AmountSubjectToTax: "12.90", SourceCode: "4216"},
		{AmountSubjectToTax: "3.20", SourceCode: "4216"},
	}

	res, err := Generate(agg, fixedOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// 12.90 + 3.20 sums to 16.10 before the component is truncated.
	if res.TotalAmount != 16 {
		t.Errorf("expected truncated total 16, got %d", res.TotalAmount)
	}
}

func TestGenerateRejectsBadAmount(t *testing.T) {
	agg := basicAggregate()
	agg.Beneficiaries[0].TADs[0].AmountSubjectToTax = "R1000"

	_, err := Generate(agg, fixedOptions())
	var numErr *NumericError
	if !errors.As(err, &numErr) {
		t.Fatalf("expected NumericError, got %v", err)
	}
	if numErr.Field != "AmountSubjectToTax" {
		t.Errorf("expected field AmountSubjectToTax, got %s", numErr.Field)
	}
}

func TestGenerateRejectsNonLatin1(t *testing.T) {
	agg := basicAggregate()
	agg.Trust.TrustName = "Trust \u2122 Holdings"

	_, err := Generate(agg, fixedOptions())
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if encErr.Rune != '\u2122' {
		t.Errorf("expected offending rune U+2122, got %q", encErr.Rune)
	}
}

func TestGenerateAcceptsLatin1Accents(t *testing.T) {
	agg := basicAggregate()
	agg.Beneficiaries[0].Beneficiary.LastName = "Joubert-Côté"

	if _, err := Generate(agg, fixedOptions()); err != nil {
		t.Errorf("accented Latin-1 name rejected: %v", err)
	}
}

func TestGenerateMissingTrust(t *testing.T) {
	if _, err := Generate(nil, fixedOptions()); !errors.Is(err, ErrTrustNotFound) {
		t.Errorf("nil aggregate: expected ErrTrustNotFound, got %v", err)
	}
	if _, err := Generate(&models.TrustAggregate{}, fixedOptions()); !errors.Is(err, ErrTrustNotFound) {
		t.Errorf("empty aggregate: expected ErrTrustNotFound, got %v", err)
	}
}

func TestGenerateReusesStoredRecordIDs(t *testing.T) {
	agg := basicAggregate()
	agg.Beneficiaries[0].Beneficiary.UniqueRecordID = "stored-dpb-id"
	agg.Beneficiaries[0].TADs[0].UniqueNumber = "stored-tad-id"

	res, err := Generate(agg, fixedOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(res.Content, "|DPB|N|stored-dpb-id|") {
		t.Error("stored beneficiary record ID was not reused")
	}
	if !strings.Contains(res.Content, "|TAD|N|stored-tad-id|") {
		t.Error("stored TAD unique number was not reused")
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 9, 15, 10, 30, 45, 0, time.UTC)
	got := Filename("1517179642", "ABC-123", ts)
	want := "I3T_1_1517179642_ABC-123_20240915T103045_B2BSFG.txt"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}
