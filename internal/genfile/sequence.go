package genfile

// sequencer hands out the record sequence numbers for one file. Headers are
// unnumbered; the RI record takes 1 and every body record after it increments
// by exactly one, regardless of record type.
type sequencer struct {
	next int
}

func newSequencer() *sequencer {
	return &sequencer{next: 1}
}

// take returns the next sequence number and advances.
func (s *sequencer) take() int {
	n := s.next
	s.next++
	return n
}

// last returns the most recently assigned sequence number.
func (s *sequencer) last() int {
	return s.next - 1
}

// totals accumulates the trust-wide sums the trailer needs. Each component is
// summed as a float across the whole trust and truncated once, then the
// truncated components are added; this reproduces the legacy grand total bit
// for bit.
type totals struct {
	tadAmounts float64
	tadCredits float64

	dntLocal   float64
	dntForeign float64
	dntOther   float64

	tffCapitalDistributed    float64
	tffExpensesIncurred      float64
	tffDonationsToTrust      float64
	tffContributionsToTrust  float64
	tffDonationsReceived     float64
	tffContributionsReceived float64
	tffDistributionsToTrust  float64
	tffContributionsRefunded float64
}

func (t *totals) addTAD(amount, credits float64) {
	t.tadAmounts += amount
	t.tadCredits += credits
}

func (t *totals) addDNT(local, foreign, other float64) {
	t.dntLocal += local
	t.dntForeign += foreign
	t.dntOther += other
}

func (t *totals) addTFF(v [8]float64) {
	t.tffCapitalDistributed += v[0]
	t.tffExpensesIncurred += v[1]
	t.tffDonationsToTrust += v[2]
	t.tffContributionsToTrust += v[3]
	t.tffDonationsReceived += v[4]
	t.tffContributionsReceived += v[5]
	t.tffDistributionsToTrust += v[6]
	t.tffContributionsRefunded += v[7]
}

// grand returns the trailer total: every component truncated, then summed.
func (t *totals) grand() int64 {
	var sum int64
	for _, c := range []float64{
		t.tadAmounts, t.tadCredits,
		t.dntLocal, t.dntForeign, t.dntOther,
		t.tffCapitalDistributed, t.tffExpensesIncurred,
		t.tffDonationsToTrust, t.tffContributionsToTrust,
		t.tffDonationsReceived, t.tffContributionsReceived,
		t.tffDistributionsToTrust, t.tffContributionsRefunded,
	} {
		sum += truncate(c)
	}
	return sum
}
