package genfile

import (
	"strconv"
	"strings"
	"time"

	"github.com/jdlsoft/it3t-filing/internal/models"
)

const (
	// fileLayoutVersion is the IT3(t) flat-file layout revision SARS accepts.
	fileLayoutVersion = "1"

	// phonePlaceholder is the sentinel SARS requires when no number was
	// captured; the field may not be blank.
	phonePlaceholder = "999999999999999"

	dataTypeSupplied  = "I3T"
	channelIdentifier = "HTTPS"
)

// yn renders a captured flag the way the layout wants it.
func yn(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// clean maps absent values (and the legacy "None" markers) to the empty
// string the layout expects.
func clean(v string) string {
	return models.Sanitize(v)
}

// orDefault substitutes def when the captured value is absent.
func orDefault(v, def string) string {
	if c := clean(v); c != "" {
		return c
	}
	return def
}

// digitsDate strips the hyphens from a stored YYYY-MM-DD date, giving the
// digits-only YYYYMMDD form the layout mandates.
func digitsDate(v string) string {
	return strings.ReplaceAll(clean(v), "-", "")
}

// renderGH builds the general header line. It is unnumbered and carries the
// message timestamp, layout version, the caller's unique file ID and the
// submitting software metadata.
func renderGH(sub models.Submitter, now time.Time, ghUniqueID, testIndicator string) string {
	fields := []string{
		"H", "GH",
		now.Format("2006-01-02T15:04:05"),
		fileLayoutVersion,
		ghUniqueID,
		"", // SARS request reference, blank on an unsolicited submission
		testIndicator,
		dataTypeSupplied,
		channelIdentifier,
		sub.SecurityToken,
		sub.SoftwareName,
		sub.SoftwareVersion,
		sub.ContactFirstName,
		sub.ContactLastName,
		clean(sub.Phone1),
		clean(sub.Phone2),
		clean(sub.CellNumber),
		clean(sub.Email),
	}
	return strings.Join(fields, "|")
}

// renderSE builds the submitting-entity header line: the practitioner lodging
// the file, plus the reporting period taken from the trust.
func renderSE(t models.Trust, e models.SubmittingEntity) string {
	fields := []string{
		"H", "SE",
		t.SubmissionTaxYear,
		orDefault(t.PeriodStartDate, defaultPeriodStart(t.SubmissionTaxYear)),
		orDefault(t.PeriodEndDate, defaultPeriodEnd(t.SubmissionTaxYear)),
		e.Nature,
		e.Surname,
		clean(e.Initials),
		clean(e.FirstNames),
		clean(e.RegisteredName),
		clean(e.IdentificationType),
		clean(e.IDNumber),
		clean(e.PassportCountry),
		clean(e.MembershipNumber),
		clean(e.ControllingBody),
		e.PracticeNumber,
		clean(e.TaxReferenceNumber),
		clean(e.PostalAddressLine1),
		clean(e.PostalAddressLine2),
		clean(e.PostalAddressLine3),
		clean(e.PostalAddressLine4),
		clean(e.PostalCode),
		clean(e.Phone1),
		clean(e.Phone2),
		clean(e.Email),
	}
	return strings.Join(fields, "|")
}

// A trust tax year runs 1 March to end of February. The fallbacks cover
// legacy rows captured before the period fields existed.
func defaultPeriodStart(taxYear string) string {
	if y, err := strconv.Atoi(taxYear); err == nil {
		return strconv.Itoa(y-1) + "-03-01"
	}
	return ""
}

func defaultPeriodEnd(taxYear string) string {
	if y, err := strconv.Atoi(taxYear); err == nil {
		return strconv.Itoa(y) + "-02-28"
	}
	return ""
}

// renderRI builds the registered-information record for the trust itself.
func renderRI(t models.Trust, uid string, seq int) string {
	fields := []string{
		"B", "RI", "N",
		uid,
		strconv.Itoa(seq),
		t.NatureOfPerson,
		t.TrustName,
		t.TrustRegNumber,
		digitsDate(t.DateRegisteredMastersOffice),
		clean(t.TaxNumber),
		"", // reserved
		orDefault(t.Residency, "ZA"),
		clean(t.MastersOffice),
		clean(t.TrustType),
		clean(t.PhysicalUnitNumber),
		clean(t.PhysicalComplex),
		clean(t.PhysicalStreetNumber),
		clean(t.PhysicalStreet),
		clean(t.PhysicalSuburb),
		clean(t.PhysicalCity),
		clean(t.PhysicalPostalCode),
		yn(t.PostalSameAsPhysical),
		clean(t.PostalAddressLine1),
		clean(t.PostalAddressLine2),
		clean(t.PostalAddressLine3),
		clean(t.PostalAddressLine4),
		clean(t.PostalCode),
		orDefault(t.ContactNumber, phonePlaceholder),
		orDefault(t.CellNumber, phonePlaceholder),
		clean(t.Email),
	}
	return strings.Join(fields, "|")
}

// renderDPB builds one beneficiary detail record, parented on the RI record.
func renderDPB(b models.Beneficiary, uid string, seq int, riUID string) string {
	fields := []string{
		"B", "DPB", "N",
		uid,
		strconv.Itoa(seq),
		riUID,
		yn(b.IsConnectedPerson),
		yn(b.IsBeneficiary),
		yn(b.IsFounder),
		yn(b.NatureOfPerson == "1"), // natural person
		yn(b.IsDonor),
		yn(b.IsNonResident),
		clean(b.TaxReferenceNumber),
		b.LastName,
		b.FirstName,
		clean(b.OtherName),
		clean(b.Initials),
		digitsDate(b.DateOfBirth),
		clean(b.IDNumber),
		clean(b.PassportNumber),
		clean(b.PassportCountry),
		clean(b.PassportIssueDate),
		clean(b.CompanyIncomeTaxRefNo),
		clean(b.CompanyRegistrationNumber),
		clean(b.CompanyRegisteredName),
		clean(b.PhysicalUnitNumber),
		clean(b.PhysicalComplex),
		clean(b.PhysicalStreetNumber),
		clean(b.PhysicalStreet),
		clean(b.PhysicalSuburb),
		clean(b.PhysicalCity),
		clean(b.PhysicalPostalCode),
		yn(b.PostalSameAsPhysical),
		clean(b.PostalAddressLine1),
		clean(b.PostalAddressLine2),
		clean(b.PostalAddressLine3),
		clean(b.PostalAddressLine4),
		clean(b.PostalCode),
		orDefault(b.ContactNumber, phonePlaceholder),
		orDefault(b.CellNumber, phonePlaceholder),
		clean(b.Email),
		yn(b.IsTaxableOnDistributed),
		yn(b.HasNonTaxableAmounts),
		yn(b.HasCapitalDistribution),
		yn(b.MadeDonations),
		yn(b.MadeContributions),
		yn(b.ReceivedDonations),
		yn(b.ReceivedContributions),
		yn(b.MadeDistributions),
		yn(b.ReceivedRefunds),
		yn(b.HasRightOfUse),
	}
	return strings.Join(fields, "|")
}

// renderTAD builds one taxable-amount line. Zero amounts render blank, not
// "0"; a non-empty value that does not parse aborts generation.
func renderTAD(tad models.TadLine, uid string, seq int, parentUID string) (string, [2]float64, error) {
	amount, err := parseMoney("AmountSubjectToTax", tad.AmountSubjectToTax)
	if err != nil {
		return "", [2]float64{}, err
	}
	sourceCode, err := parseMoney("SourceCode", tad.SourceCode)
	if err != nil {
		return "", [2]float64{}, err
	}
	credits, err := parseMoney("ForeignTaxCredits", tad.ForeignTaxCredits)
	if err != nil {
		return "", [2]float64{}, err
	}

	amountField := ""
	if amount != 0 {
		amountField = strings.TrimSpace(clean(tad.AmountSubjectToTax))
	}
	sourceField := ""
	if sourceCode != 0 {
		sourceField = strings.TrimSpace(clean(tad.SourceCode))
	}
	creditsField := ""
	if credits != 0 {
		creditsField = strings.TrimSpace(clean(tad.ForeignTaxCredits))
	}

	fields := []string{
		orDefault(tad.SectionIdentifier, "B"),
		orDefault(tad.RecordType, "TAD"),
		orDefault(tad.RecordStatus, "N"),
		uid,
		strconv.Itoa(seq),
		parentUID,
		amountField,
		sourceField,
		creditsField,
	}
	return strings.Join(fields, "|"), [2]float64{amount, credits}, nil
}

// renderDNT builds the non-taxable distributions line from the beneficiary's
// DNT row (or all zeros when none was captured). Values are truncated to
// integers.
func renderDNT(dnt models.DntLine, uid string, seq int, parentUID string) (string, error) {
	local, err := parseMoney("LocalDividends", dnt.LocalDividends)
	if err != nil {
		return "", err
	}
	foreign, err := parseMoney("ExemptForeignDividends", dnt.ExemptForeignDividends)
	if err != nil {
		return "", err
	}
	other, err := parseMoney("OtherNonTaxableIncome", dnt.OtherNonTaxableIncome)
	if err != nil {
		return "", err
	}

	fields := []string{
		"B", "DNT", "N",
		uid,
		strconv.Itoa(seq),
		parentUID,
		formatTruncated(local),
		formatTruncated(foreign),
		formatTruncated(other),
	}
	return strings.Join(fields, "|"), nil
}

// tffFieldNames index-matches the [8]float64 flow vector used below.
var tffFieldNames = [8]string{
	"TotalValueOfCapitalDistributed",
	"TotalExpensesIncurred",
	"TotalDonationsToTrust",
	"TotalContributionsToTrust",
	"TotalDonationsReceivedFromTrust",
	"TotalContributionsReceivedFromTrust",
	"TotalDistributionsToTrust",
	"TotalContributionsRefundedByTrust",
}

// sumTFF folds zero-or-many captured TFF rows into the eight flow sums.
func sumTFF(rows []models.TffLine) ([8]float64, error) {
	var sums [8]float64
	for _, row := range rows {
		values := [8]string{
			row.TotalValueOfCapitalDistributed,
			row.TotalExpensesIncurred,
			row.TotalDonationsToTrust,
			row.TotalContributionsToTrust,
			row.TotalDonationsReceivedFromTrust,
			row.TotalContributionsReceivedFromTrust,
			row.TotalDistributionsToTrust,
			row.TotalContributionsRefundedByTrust,
		}
		for i, v := range values {
			f, err := parseMoney(tffFieldNames[i], v)
			if err != nil {
				return sums, err
			}
			sums[i] += f
		}
	}
	return sums, nil
}

// renderTFF builds the total-financial-flows line. One is always emitted per
// beneficiary, even when every flow is zero: it reports "no flows", not
// "flows absent". Each flow is the truncated sum across the beneficiary's
// rows.
func renderTFF(sums [8]float64, uid string, seq int, parentUID string) string {
	fields := []string{
		"B", "TFF", "N",
		uid,
		strconv.Itoa(seq),
		parentUID,
	}
	for _, s := range sums {
		fields = append(fields, formatTruncated(s))
	}
	return strings.Join(fields, "|")
}

// renderTrailer builds the integrity trailer: last assigned sequence number,
// MD5 of the separator-less body, and the grand total to two decimals.
func renderTrailer(lastSeq int, md5hex string, grandTotal int64) string {
	return "T|" + strconv.Itoa(lastSeq) + "|" + md5hex + "|" + strconv.FormatInt(grandTotal, 10) + ".00"
}
