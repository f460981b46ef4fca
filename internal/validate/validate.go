// Package validate holds the pure field checks SARS applies to IT3(t)
// submissions. They are usable independently of file generation so the
// capture layer can reject bad data before a file is ever built.
package validate

import (
	"strings"
	"time"

	"github.com/jdlsoft/it3t-filing/internal/models"
)

// identificationTypeCodes maps the capture form's labels to the layout codes.
var identificationTypeCodes = map[string]string{
	"South African Id": "001",
	"Passport":         "002",
}

// IdentificationTypeCode converts a captured identification-type label to
// its layout code. Unknown labels return "".
func IdentificationTypeCode(raw string) string {
	return identificationTypeCodes[titleCase(raw)]
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Modulus10 validates a 10-digit SARS tax reference number with the
// Luhn-style doubling check. Anything that is not exactly 10 digits fails.
// All zeros passes: the digit sum is 0, which divides by 10.
func Modulus10(number string) bool {
	if len(number) != 10 || !allDigits(number) {
		return false
	}
	sum := 0
	for i := 0; i < len(number); i++ {
		d := int(number[i] - '0')
		if i%2 == 0 {
			d *= 2
			if d >= 10 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

// SAIDMatchesBirthDate checks that the first six digits of a 13-digit South
// African ID number equal the YYMMDD of the holder's date of birth
// (YYYY-MM-DD). Any malformed input fails.
func SAIDMatchesBirthDate(idNumber, dateOfBirth string) bool {
	if len(idNumber) != 13 || !allDigits(idNumber) {
		return false
	}
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return false
	}
	return idNumber[:6] == dob.Format("060102")
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Finding is one validation failure located within a trust aggregate.
type Finding struct {
	Record  string `json:"record"`  // "trust" or "beneficiary"
	Subject string `json:"subject"` // registration number or beneficiary name
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CheckAggregate runs the submission-blocking checks across a trust
// aggregate: tax reference numbers must pass the mod-10 check and a South
// African ID must agree with the date of birth. An empty slice means the
// aggregate is fit to generate.
func CheckAggregate(agg *models.TrustAggregate) []Finding {
	var findings []Finding
	if agg == nil {
		return findings
	}

	if tax := models.Sanitize(agg.Trust.TaxNumber); tax != "" && !Modulus10(tax) {
		findings = append(findings, Finding{
			Record:  "trust",
			Subject: agg.Trust.TrustRegNumber,
			Field:   "TaxNumber",
			Message: "tax reference number fails the modulus-10 check",
		})
	}

	for _, block := range agg.Beneficiaries {
		b := block.Beneficiary
		name := strings.TrimSpace(b.FirstName + " " + b.LastName)

		if tax := models.Sanitize(b.TaxReferenceNumber); tax != "" && !Modulus10(tax) {
			findings = append(findings, Finding{
				Record:  "beneficiary",
				Subject: name,
				Field:   "TaxReferenceNumber",
				Message: "tax reference number fails the modulus-10 check",
			})
		}

		id := models.Sanitize(b.IDNumber)
		if id != "" && b.IdentificationType != "002" && !SAIDMatchesBirthDate(id, models.Sanitize(b.DateOfBirth)) {
			findings = append(findings, Finding{
				Record:  "beneficiary",
				Subject: name,
				Field:   "IDNumber",
				Message: "ID number does not match the date of birth",
			})
		}
	}
	return findings
}
