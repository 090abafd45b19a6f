package record

import "sort"

// Trend is the response-trend category carried by level-2 data and used in
// aggregate by benchmarking.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendPlateau   Trend = "plateau"
	TrendWorse     Trend = "worse"
)

// Valid reports whether the trend is one of the known categories.
func (t Trend) Valid() bool {
	switch t {
	case TrendImproving, TrendPlateau, TrendWorse:
		return true
	}
	return false
}

// PatientRecord is one clinic's record of a patient, keyed by the patient
// fingerprint. Records are immutable once created; intake-time creation and
// later mutation belong to external collaborators.
//
// Fields are disclosed strictly by visible level: level 1 exposes conditions
// and date ranges, level 2 adds interventions and the response trend, level 3
// adds red flags, timeline and the last-seen date.
type PatientRecord struct {
	ID          string
	ClinicID    string
	Fingerprint string

	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD

	Conditions    []string
	Interventions []string
	ResponseTrend Trend
	RedFlags      []string
	Timeline      []string
}

// OutcomeSamples derives one sample per patient for a single clinic's
// records: the trend of the most recent record (by end date, then record id)
// that carries level-2 data. Records without a trend contribute nothing.
func OutcomeSamples(records []PatientRecord) []Trend {
	latest := make(map[string]PatientRecord)
	for _, r := range records {
		if !r.ResponseTrend.Valid() {
			continue
		}
		cur, ok := latest[r.Fingerprint]
		if !ok || r.EndDate > cur.EndDate || (r.EndDate == cur.EndDate && r.ID > cur.ID) {
			latest[r.Fingerprint] = r
		}
	}

	fingerprints := make([]string, 0, len(latest))
	for fp := range latest {
		fingerprints = append(fingerprints, fp)
	}
	sort.Strings(fingerprints)

	samples := make([]Trend, 0, len(latest))
	for _, fp := range fingerprints {
		samples = append(samples, latest[fp].ResponseTrend)
	}
	return samples
}
