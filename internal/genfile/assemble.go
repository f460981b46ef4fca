// Package genfile produces the SARS IT3(t) flat file for one trust: it
// renders each captured record into a pipe-delimited line, numbers the body
// records, accumulates the trailer totals and seals the file with an MD5
// integrity hash. Generation is a single deterministic pass over an
// already-fetched aggregate; it performs no I/O.
package genfile

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jdlsoft/it3t-filing/internal/models"
)

// Options controls one generation run. The caller supplies the file's unique
// ID, the clock and the UUID source so output is reproducible under test.
type Options struct {
	// GHUniqueID is the file's declared unique ID. Generated when empty.
	GHUniqueID string
	// Now is the message-creation timestamp. Wall clock when zero.
	Now time.Time
	// NewUID mints record identifiers. uuid v4 when nil.
	NewUID func() string
	// TestDataIndicator is "T" for test submissions, "L" for live.
	// Defaults to "T".
	TestDataIndicator string

	Submitter models.Submitter
	Entity    models.SubmittingEntity
}

// Result is the finished submission artifact plus the summary counters the
// caller reports back to the user.
type Result struct {
	Filename    string       `json:"filename"`
	Content     string       `json:"content"`
	Trust       models.Trust `json:"trust"`
	DPBCount    int          `json:"dpbCount"`
	TADCount    int          `json:"tadCount"`
	TFFCount    int          `json:"tffCount"`
	TotalAmount int64        `json:"totalAmount"`
}

// Generate assembles the full IT3(t) file for the aggregate.
//
// Emission order: GH and SE headers (unnumbered), the RI trust record, then
// per beneficiary one DPB, its TAD lines, a DNT line only when the
// beneficiary has non-taxable amounts, and always one TFF line. The MD5 in
// the trailer covers every prior line concatenated with no separator; the
// returned content joins the lines with newlines.
func Generate(agg *models.TrustAggregate, opts Options) (*Result, error) {
	if agg == nil || (agg.Trust.TrustRegNumber == "" && agg.Trust.TrustName == "") {
		return nil, ErrTrustNotFound
	}

	if opts.NewUID == nil {
		opts.NewUID = uuid.NewString
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.GHUniqueID == "" {
		opts.GHUniqueID = opts.NewUID()
	}
	if opts.TestDataIndicator == "" {
		opts.TestDataIndicator = "T"
	}

	seq := newSequencer()
	var sums totals
	var tadCount, tffCount int

	lines := []string{
		renderGH(opts.Submitter, opts.Now, opts.GHUniqueID, opts.TestDataIndicator),
		renderSE(agg.Trust, opts.Entity),
	}

	riUID := opts.NewUID()
	lines = append(lines, renderRI(agg.Trust, riUID, seq.take()))

	for _, block := range agg.Beneficiaries {
		dpbUID := clean(block.Beneficiary.UniqueRecordID)
		if dpbUID == "" {
			dpbUID = opts.NewUID()
		}
		lines = append(lines, renderDPB(block.Beneficiary, dpbUID, seq.take(), riUID))

		for _, tad := range block.TADs {
			uid := clean(tad.UniqueNumber)
			if uid == "" {
				uid = opts.NewUID()
			}
			line, amounts, err := renderTAD(tad, uid, seq.take(), dpbUID)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
			sums.addTAD(amounts[0], amounts[1])
			tadCount++
		}

		// All captured DNT rows feed the trailer total, even when the
		// beneficiary's flag suppresses the line itself.
		for _, dnt := range block.DNTs {
			local, err := parseMoney("LocalDividends", dnt.LocalDividends)
			if err != nil {
				return nil, err
			}
			foreign, err := parseMoney("ExemptForeignDividends", dnt.ExemptForeignDividends)
			if err != nil {
				return nil, err
			}
			other, err := parseMoney("OtherNonTaxableIncome", dnt.OtherNonTaxableIncome)
			if err != nil {
				return nil, err
			}
			sums.addDNT(local, foreign, other)
		}

		if block.Beneficiary.HasNonTaxableAmounts {
			var dnt models.DntLine
			if len(block.DNTs) > 0 {
				dnt = block.DNTs[0]
			}
			line, err := renderDNT(dnt, opts.NewUID(), seq.take(), dpbUID)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}

		flowSums, err := sumTFF(block.TFFs)
		if err != nil {
			return nil, err
		}
		lines = append(lines, renderTFF(flowSums, opts.NewUID(), seq.take(), dpbUID))
		sums.addTFF(flowSums)
		tffCount += len(block.TFFs)
	}

	// The hash covers the separator-less concatenation of everything above;
	// the trailer cannot include a hash of itself.
	body := strings.Join(lines, "")
	digest := md5.Sum([]byte(body))
	md5hex := hex.EncodeToString(digest[:])

	lines = append(lines, renderTrailer(seq.last(), md5hex, sums.grand()))

	if err := ensureLatin1(lines); err != nil {
		return nil, err
	}

	return &Result{
		Filename:    Filename(opts.Entity.PracticeNumber, opts.GHUniqueID, opts.Now),
		Content:     strings.Join(lines, "\n"),
		Trust:       agg.Trust,
		DPBCount:    len(agg.Beneficiaries),
		TADCount:    tadCount,
		TFFCount:    tffCount,
		TotalAmount: sums.grand(),
	}, nil
}

// Filename builds the submission filename SARS expects for a B2B secure file
// gateway upload.
func Filename(practiceNumber, ghUniqueID string, ts time.Time) string {
	return "I3T_1_" + practiceNumber + "_" + ghUniqueID + "_" + ts.Format("20060102T150405") + "_B2BSFG.txt"
}
