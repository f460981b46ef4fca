// Package store is the data access layer for captured trust data. It owns
// the connection pool and hands the generator fully fetched, typed
// aggregates; nothing downstream of this package touches the database.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdlsoft/it3t-filing/internal/models"
)

// ErrNotFound is returned when a requested trust does not exist.
var ErrNotFound = errors.New("trust not found")

// Repository handles database operations for trusts and their beneficiaries.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repository on an existing pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Connect opens a pgx pool for the given database URL.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return pool, nil
}

// TrustSummary is one row of the trust list view.
type TrustSummary struct {
	TrustID           int64  `json:"trustId"`
	TrustRegNumber    string `json:"trustRegNumber"`
	TrustName         string `json:"trustName"`
	SubmissionTaxYear string `json:"submissionTaxYear"`
	Status            string `json:"status"`
}

// ListTrusts returns all captured trusts, oldest first.
func (r *Repository) ListTrusts(ctx context.Context) ([]TrustSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT trust_id, trust_reg_number, trust_name,
		       COALESCE(submission_tax_year, ''), COALESCE(status, '')
		FROM trusts
		ORDER BY trust_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trusts []TrustSummary
	for rows.Next() {
		var t TrustSummary
		if err := rows.Scan(&t.TrustID, &t.TrustRegNumber, &t.TrustName, &t.SubmissionTaxYear, &t.Status); err != nil {
			return nil, err
		}
		trusts = append(trusts, t)
	}
	return trusts, rows.Err()
}

// LoadTrustAggregate fetches a trust with its beneficiaries and all of their
// TAD/DNT/TFF lines, in capture order. The result is detached from the
// database and safe to hand to the generator.
func (r *Repository) LoadTrustAggregate(ctx context.Context, trustID int64) (*models.TrustAggregate, error) {
	trust, err := r.getTrust(ctx, trustID)
	if err != nil {
		return nil, err
	}

	agg := &models.TrustAggregate{Trust: *trust}

	beneficiaries, err := r.listBeneficiaries(ctx, trustID)
	if err != nil {
		return nil, err
	}

	for _, b := range beneficiaries {
		block := models.BeneficiaryBlock{Beneficiary: b}

		if block.TADs, err = r.listTADs(ctx, b.BeneficiaryID); err != nil {
			return nil, err
		}
		if block.DNTs, err = r.listDNTs(ctx, b.BeneficiaryID); err != nil {
			return nil, err
		}
		if block.TFFs, err = r.listTFFs(ctx, b.BeneficiaryID); err != nil {
			return nil, err
		}

		agg.Beneficiaries = append(agg.Beneficiaries, block)
	}
	return agg, nil
}

func (r *Repository) getTrust(ctx context.Context, trustID int64) (*models.Trust, error) {
	var t models.Trust
	err := r.db.QueryRow(ctx, `
		SELECT trust_id, trust_reg_number, trust_name,
		       COALESCE(tax_number, ''), COALESCE(nature_of_person, ''),
		       COALESCE(trust_type, ''), COALESCE(residency, ''),
		       COALESCE(masters_office, ''), COALESCE(date_registered_masters_office, ''),
		       COALESCE(submission_tax_year, ''),
		       COALESCE(period_start_date, ''), COALESCE(period_end_date, ''),
		       COALESCE(physical_unit_number, ''), COALESCE(physical_complex, ''),
		       COALESCE(physical_street_number, ''), COALESCE(physical_street, ''),
		       COALESCE(physical_suburb, ''), COALESCE(physical_city, ''),
		       COALESCE(physical_postal_code, ''),
		       postal_same_as_physical,
		       COALESCE(postal_address_line1, ''), COALESCE(postal_address_line2, ''),
		       COALESCE(postal_address_line3, ''), COALESCE(postal_address_line4, ''),
		       COALESCE(postal_code, ''),
		       COALESCE(contact_number, ''), COALESCE(cell_number, ''),
		       COALESCE(email, ''), COALESCE(status, '')
		FROM trusts
		WHERE trust_id = $1
	`, trustID).Scan(
		&t.TrustID, &t.TrustRegNumber, &t.TrustName,
		&t.TaxNumber, &t.NatureOfPerson,
		&t.TrustType, &t.Residency,
		&t.MastersOffice, &t.DateRegisteredMastersOffice,
		&t.SubmissionTaxYear,
		&t.PeriodStartDate, &t.PeriodEndDate,
		&t.PhysicalUnitNumber, &t.PhysicalComplex,
		&t.PhysicalStreetNumber, &t.PhysicalStreet,
		&t.PhysicalSuburb, &t.PhysicalCity,
		&t.PhysicalPostalCode,
		&t.PostalSameAsPhysical,
		&t.PostalAddressLine1, &t.PostalAddressLine2,
		&t.PostalAddressLine3, &t.PostalAddressLine4,
		&t.PostalCode,
		&t.ContactNumber, &t.CellNumber,
		&t.Email, &t.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repository) listBeneficiaries(ctx context.Context, trustID int64) ([]models.Beneficiary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT beneficiary_id, trust_id, COALESCE(unique_record_id, ''),
		       COALESCE(tax_reference_number, ''),
		       COALESCE(last_name, ''), COALESCE(first_name, ''),
		       COALESCE(other_name, ''), COALESCE(initials, ''),
		       COALESCE(date_of_birth, ''), COALESCE(identification_type, '001'),
		       COALESCE(id_number, ''), COALESCE(passport_number, ''),
		       COALESCE(passport_country, ''), COALESCE(passport_issue_date, ''),
		       COALESCE(company_income_tax_ref_no, ''),
		       COALESCE(company_registration_number, ''),
		       COALESCE(company_registered_name, ''),
		       COALESCE(nature_of_person, ''),
		       is_connected_person, is_beneficiary, is_founder, is_donor, is_non_resident,
		       COALESCE(physical_unit_number, ''), COALESCE(physical_complex, ''),
		       COALESCE(physical_street_number, ''), COALESCE(physical_street, ''),
		       COALESCE(physical_suburb, ''), COALESCE(physical_city, ''),
		       COALESCE(physical_postal_code, ''),
		       postal_same_as_physical,
		       COALESCE(postal_address_line1, ''), COALESCE(postal_address_line2, ''),
		       COALESCE(postal_address_line3, ''), COALESCE(postal_address_line4, ''),
		       COALESCE(postal_code, ''),
		       COALESCE(contact_number, ''), COALESCE(cell_number, ''), COALESCE(email, ''),
		       is_taxable_on_distributed, has_non_taxable_amounts, has_capital_distribution,
		       made_donations, made_contributions, received_donations,
		       received_contributions, made_distributions, received_refunds,
		       has_right_of_use
		FROM beneficiaries
		WHERE trust_id = $1
		ORDER BY beneficiary_id
	`, trustID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beneficiaries []models.Beneficiary
	for rows.Next() {
		var b models.Beneficiary
		if err := rows.Scan(
			&b.BeneficiaryID, &b.TrustID, &b.UniqueRecordID,
			&b.TaxReferenceNumber,
			&b.LastName, &b.FirstName,
			&b.OtherName, &b.Initials,
			&b.DateOfBirth, &b.IdentificationType,
			&b.IDNumber, &b.PassportNumber,
			&b.PassportCountry, &b.PassportIssueDate,
			&b.CompanyIncomeTaxRefNo,
			&b.CompanyRegistrationNumber,
			&b.CompanyRegisteredName,
			&b.NatureOfPerson,
			&b.IsConnectedPerson, &b.IsBeneficiary, &b.IsFounder, &b.IsDonor, &b.IsNonResident,
			&b.PhysicalUnitNumber, &b.PhysicalComplex,
			&b.PhysicalStreetNumber, &b.PhysicalStreet,
			&b.PhysicalSuburb, &b.PhysicalCity,
			&b.PhysicalPostalCode,
			&b.PostalSameAsPhysical,
			&b.PostalAddressLine1, &b.PostalAddressLine2,
			&b.PostalAddressLine3, &b.PostalAddressLine4,
			&b.PostalCode,
			&b.ContactNumber, &b.CellNumber, &b.Email,
			&b.IsTaxableOnDistributed, &b.HasNonTaxableAmounts, &b.HasCapitalDistribution,
			&b.MadeDonations, &b.MadeContributions, &b.ReceivedDonations,
			&b.ReceivedContributions, &b.MadeDistributions, &b.ReceivedRefunds,
			&b.HasRightOfUse,
		); err != nil {
			return nil, err
		}
		beneficiaries = append(beneficiaries, b)
	}
	return beneficiaries, rows.Err()
}

func (r *Repository) listTADs(ctx context.Context, beneficiaryID int64) ([]models.TadLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(section_identifier, 'B'), COALESCE(record_type, 'TAD'),
		       COALESCE(record_status, 'N'), COALESCE(unique_number, ''),
		       COALESCE(amount_subject_to_tax::text, ''),
		       COALESCE(source_code::text, ''),
		       COALESCE(foreign_tax_credits::text, '')
		FROM beneficiary_tad
		WHERE beneficiary_id = $1
		ORDER BY tad_id
	`, beneficiaryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tads []models.TadLine
	for rows.Next() {
		var t models.TadLine
		if err := rows.Scan(
			&t.SectionIdentifier, &t.RecordType,
			&t.RecordStatus, &t.UniqueNumber,
			&t.AmountSubjectToTax, &t.SourceCode, &t.ForeignTaxCredits,
		); err != nil {
			return nil, err
		}
		tads = append(tads, t)
	}
	return tads, rows.Err()
}

func (r *Repository) listDNTs(ctx context.Context, beneficiaryID int64) ([]models.DntLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(local_dividends::text, ''),
		       COALESCE(exempt_foreign_dividends::text, ''),
		       COALESCE(other_non_taxable_income::text, '')
		FROM beneficiary_dnt
		WHERE beneficiary_id = $1
		ORDER BY dnt_id
	`, beneficiaryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dnts []models.DntLine
	for rows.Next() {
		var d models.DntLine
		if err := rows.Scan(&d.LocalDividends, &d.ExemptForeignDividends, &d.OtherNonTaxableIncome); err != nil {
			return nil, err
		}
		dnts = append(dnts, d)
	}
	return dnts, rows.Err()
}

func (r *Repository) listTFFs(ctx context.Context, beneficiaryID int64) ([]models.TffLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(total_value_of_capital_distributed::text, ''),
		       COALESCE(total_expenses_incurred::text, ''),
		       COALESCE(total_donations_to_trust::text, ''),
		       COALESCE(total_contributions_to_trust::text, ''),
		       COALESCE(total_donations_received_from_trust::text, ''),
		       COALESCE(total_contributions_received_from_trust::text, ''),
		       COALESCE(total_distributions_to_trust::text, ''),
		       COALESCE(total_contributions_refunded_by_trust::text, '')
		FROM beneficiary_tff
		WHERE beneficiary_id = $1
		ORDER BY tff_id
	`, beneficiaryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tffs []models.TffLine
	for rows.Next() {
		var t models.TffLine
		if err := rows.Scan(
			&t.TotalValueOfCapitalDistributed,
			&t.TotalExpensesIncurred,
			&t.TotalDonationsToTrust,
			&t.TotalContributionsToTrust,
			&t.TotalDonationsReceivedFromTrust,
			&t.TotalContributionsReceivedFromTrust,
			&t.TotalDistributionsToTrust,
			&t.TotalContributionsRefundedByTrust,
		); err != nil {
			return nil, err
		}
		tffs = append(tffs, t)
	}
	return tffs, rows.Err()
}

// LatestSubmission returns the GH contact metadata of the most recent
// submission captured for the trust, or ok=false when none exists and the
// configured defaults should be used.
func (r *Repository) LatestSubmission(ctx context.Context, trustID int64) (models.Submitter, bool, error) {
	var s models.Submitter
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(software_name, ''), COALESCE(software_version, ''),
		       COALESCE(user_first_name, ''), COALESCE(user_last_name, ''),
		       COALESCE(business_telephone_number1, ''),
		       COALESCE(business_telephone_number2, ''),
		       COALESCE(cell_phone_number, ''), COALESCE(user_email, ''),
		       COALESCE(security_token, '')
		FROM submissions
		WHERE trust_id = $1
		ORDER BY submission_date DESC
		LIMIT 1
	`, trustID).Scan(
		&s.SoftwareName, &s.SoftwareVersion,
		&s.ContactFirstName, &s.ContactLastName,
		&s.Phone1, &s.Phone2,
		&s.CellNumber, &s.Email,
		&s.SecurityToken,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Submitter{}, false, nil
		}
		return models.Submitter{}, false, err
	}
	return s, true, nil
}

// MarkSubmitted advances the trust's lifecycle status after a file has been
// handed to SARS.
func (r *Repository) MarkSubmitted(ctx context.Context, trustID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE trusts SET status = $1 WHERE trust_id = $2`,
		models.StatusSubmittedToSARS, trustID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
