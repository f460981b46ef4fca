package models

// Trust lifecycle statuses as captured by the front office.
const (
	StatusCaptured           = "Captured"
	StatusEdited             = "Edited"
	StatusReadyForSubmission = "Ready for Submission"
	StatusSubmittedToSARS    = "Submitted to SARS"
)

// Trust is the registered-information (RI) entity a submission reports on.
// Optional fields are empty strings when absent; monetary and date values are
// carried as the capture layer stored them.
type Trust struct {
	TrustID                     int64  `json:"trustId"`
	TrustRegNumber              string `json:"trustRegNumber"`
	TrustName                   string `json:"trustName"`
	TaxNumber                   string `json:"taxNumber,omitempty"`
	NatureOfPerson              string `json:"natureOfPerson"`
	TrustType                   string `json:"trustType,omitempty"`
	Residency                   string `json:"residency,omitempty"`
	MastersOffice               string `json:"mastersOffice,omitempty"`
	DateRegisteredMastersOffice string `json:"dateRegisteredMastersOffice,omitempty"`
	SubmissionTaxYear           string `json:"submissionTaxYear"`
	PeriodStartDate             string `json:"periodStartDate,omitempty"`
	PeriodEndDate               string `json:"periodEndDate,omitempty"`

	PhysicalUnitNumber   string `json:"physicalUnitNumber,omitempty"`
	PhysicalComplex      string `json:"physicalComplex,omitempty"`
	PhysicalStreetNumber string `json:"physicalStreetNumber,omitempty"`
	PhysicalStreet       string `json:"physicalStreet,omitempty"`
	PhysicalSuburb       string `json:"physicalSuburb,omitempty"`
	PhysicalCity         string `json:"physicalCity,omitempty"`
	PhysicalPostalCode   string `json:"physicalPostalCode,omitempty"`

	PostalSameAsPhysical bool   `json:"postalSameAsPhysical"`
	PostalAddressLine1   string `json:"postalAddressLine1,omitempty"`
	PostalAddressLine2   string `json:"postalAddressLine2,omitempty"`
	PostalAddressLine3   string `json:"postalAddressLine3,omitempty"`
	PostalAddressLine4   string `json:"postalAddressLine4,omitempty"`
	PostalCode           string `json:"postalCode,omitempty"`

	ContactNumber string `json:"contactNumber,omitempty"`
	CellNumber    string `json:"cellNumber,omitempty"`
	Email         string `json:"email,omitempty"`

	Status string `json:"status,omitempty"`
}

// Beneficiary is one person or entity connected to a trust (DPB record).
type Beneficiary struct {
	BeneficiaryID  int64  `json:"beneficiaryId"`
	TrustID        int64  `json:"trustId"`
	UniqueRecordID string `json:"uniqueRecordId,omitempty"`

	TaxReferenceNumber string `json:"taxReferenceNumber,omitempty"`
	LastName           string `json:"lastName"`
	FirstName          string `json:"firstName"`
	OtherName          string `json:"otherName,omitempty"`
	Initials           string `json:"initials,omitempty"`
	DateOfBirth        string `json:"dateOfBirth,omitempty"`
	IdentificationType string `json:"identificationType,omitempty"`
	IDNumber           string `json:"idNumber,omitempty"`
	PassportNumber     string `json:"passportNumber,omitempty"`
	PassportCountry    string `json:"passportCountry,omitempty"`
	PassportIssueDate  string `json:"passportIssueDate,omitempty"`

	CompanyIncomeTaxRefNo     string `json:"companyIncomeTaxRefNo,omitempty"`
	CompanyRegistrationNumber string `json:"companyRegistrationNumber,omitempty"`
	CompanyRegisteredName     string `json:"companyRegisteredName,omitempty"`

	// NatureOfPerson "1" marks a natural person on the wire.
	NatureOfPerson string `json:"natureOfPerson"`

	IsConnectedPerson bool `json:"isConnectedPerson"`
	IsBeneficiary     bool `json:"isBeneficiary"`
	IsFounder         bool `json:"isFounder"`
	IsDonor           bool `json:"isDonor"`
	IsNonResident     bool `json:"isNonResident"`

	PhysicalUnitNumber   string `json:"physicalUnitNumber,omitempty"`
	PhysicalComplex      string `json:"physicalComplex,omitempty"`
	PhysicalStreetNumber string `json:"physicalStreetNumber,omitempty"`
	PhysicalStreet       string `json:"physicalStreet,omitempty"`
	PhysicalSuburb       string `json:"physicalSuburb,omitempty"`
	PhysicalCity         string `json:"physicalCity,omitempty"`
	PhysicalPostalCode   string `json:"physicalPostalCode,omitempty"`

	PostalSameAsPhysical bool   `json:"postalSameAsPhysical"`
	PostalAddressLine1   string `json:"postalAddressLine1,omitempty"`
	PostalAddressLine2   string `json:"postalAddressLine2,omitempty"`
	PostalAddressLine3   string `json:"postalAddressLine3,omitempty"`
	PostalAddressLine4   string `json:"postalAddressLine4,omitempty"`
	PostalCode           string `json:"postalCode,omitempty"`

	ContactNumber string `json:"contactNumber,omitempty"`
	CellNumber    string `json:"cellNumber,omitempty"`
	Email         string `json:"email,omitempty"`

	IsTaxableOnDistributed bool `json:"isTaxableOnDistributed"`
	HasNonTaxableAmounts   bool `json:"hasNonTaxableAmounts"`
	HasCapitalDistribution bool `json:"hasCapitalDistribution"`
	MadeDonations          bool `json:"madeDonations"`
	MadeContributions      bool `json:"madeContributions"`
	ReceivedDonations      bool `json:"receivedDonations"`
	ReceivedContributions  bool `json:"receivedContributions"`
	MadeDistributions      bool `json:"madeDistributions"`
	ReceivedRefunds        bool `json:"receivedRefunds"`
	HasRightOfUse          bool `json:"hasRightOfUse"`
}

// TadLine is one taxable-amount-distributed line item for a beneficiary.
// Monetary fields stay strings so the rendered file reproduces the captured
// value byte for byte; parsing happens strictly at generation time.
type TadLine struct {
	SectionIdentifier  string `json:"sectionIdentifier,omitempty"`
	RecordType         string `json:"recordType,omitempty"`
	RecordStatus       string `json:"recordStatus,omitempty"`
	UniqueNumber       string `json:"uniqueNumber,omitempty"`
	AmountSubjectToTax string `json:"amountSubjectToTax,omitempty"`
	SourceCode         string `json:"sourceCode,omitempty"`
	ForeignTaxCredits  string `json:"foreignTaxCredits,omitempty"`
}

// DntLine holds a beneficiary's non-taxable distribution amounts.
type DntLine struct {
	LocalDividends         string `json:"localDividends,omitempty"`
	ExemptForeignDividends string `json:"exemptForeignDividends,omitempty"`
	OtherNonTaxableIncome  string `json:"otherNonTaxableIncome,omitempty"`
}

// TffLine holds a beneficiary's total financial flow amounts.
type TffLine struct {
	TotalValueOfCapitalDistributed      string `json:"totalValueOfCapitalDistributed,omitempty"`
	TotalExpensesIncurred               string `json:"totalExpensesIncurred,omitempty"`
	TotalDonationsToTrust               string `json:"totalDonationsToTrust,omitempty"`
	TotalContributionsToTrust           string `json:"totalContributionsToTrust,omitempty"`
	TotalDonationsReceivedFromTrust     string `json:"totalDonationsReceivedFromTrust,omitempty"`
	TotalContributionsReceivedFromTrust string `json:"totalContributionsReceivedFromTrust,omitempty"`
	TotalDistributionsToTrust           string `json:"totalDistributionsToTrust,omitempty"`
	TotalContributionsRefundedByTrust   string `json:"totalContributionsRefundedByTrust,omitempty"`
}

// BeneficiaryBlock groups a beneficiary with its transaction lines, in the
// order the file emits them.
type BeneficiaryBlock struct {
	Beneficiary Beneficiary `json:"beneficiary"`
	TADs        []TadLine   `json:"tads,omitempty"`
	// DNTs is at most one line in practice; extra rows still count toward
	// the trailer total.
	DNTs []DntLine `json:"dnts,omitempty"`
	TFFs []TffLine `json:"tffs,omitempty"`
}

// TrustAggregate is everything the generator needs for one submission file,
// already fetched and detached from storage. Beneficiary order is emission
// order.
type TrustAggregate struct {
	Trust         Trust              `json:"trust"`
	Beneficiaries []BeneficiaryBlock `json:"beneficiaries"`
}

// Submitter carries the GH header metadata: the software producing the file
// and the person SARS may contact about it.
type Submitter struct {
	SoftwareName     string `json:"softwareName"`
	SoftwareVersion  string `json:"softwareVersion"`
	ContactFirstName string `json:"contactFirstName"`
	ContactLastName  string `json:"contactLastName"`
	Phone1           string `json:"phone1,omitempty"`
	Phone2           string `json:"phone2,omitempty"`
	CellNumber       string `json:"cellNumber,omitempty"`
	Email            string `json:"email,omitempty"`
	SecurityToken    string `json:"securityToken"`
}

// SubmittingEntity carries the SE header metadata: the tax practitioner or
// entity lodging the submission.
type SubmittingEntity struct {
	Nature             string `json:"nature"` // e.g. INDIVIDUAL
	Surname            string `json:"surname"`
	Initials           string `json:"initials,omitempty"`
	FirstNames         string `json:"firstNames,omitempty"`
	RegisteredName     string `json:"registeredName,omitempty"`
	IdentificationType string `json:"identificationType,omitempty"`
	IDNumber           string `json:"idNumber,omitempty"`
	PassportCountry    string `json:"passportCountry,omitempty"`
	MembershipNumber   string `json:"membershipNumber,omitempty"`
	ControllingBody    string `json:"controllingBody,omitempty"`
	PracticeNumber     string `json:"practiceNumber"`
	TaxReferenceNumber string `json:"taxReferenceNumber,omitempty"`
	PostalAddressLine1 string `json:"postalAddressLine1,omitempty"`
	PostalAddressLine2 string `json:"postalAddressLine2,omitempty"`
	PostalAddressLine3 string `json:"postalAddressLine3,omitempty"`
	PostalAddressLine4 string `json:"postalAddressLine4,omitempty"`
	PostalCode         string `json:"postalCode,omitempty"`
	Phone1             string `json:"phone1,omitempty"`
	Phone2             string `json:"phone2,omitempty"`
	Email              string `json:"email,omitempty"`
}

// Sanitize normalises a captured value: the legacy capture layer stored the
// literal strings "None"/"none" for missing data.
func Sanitize(v string) string {
	if v == "None" || v == "none" {
		return ""
	}
	return v
}
