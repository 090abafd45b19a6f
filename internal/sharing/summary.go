package sharing

import (
	"carelink/internal/clinic"
	"carelink/internal/record"
	pkgstrings "carelink/pkg/platform/strings"
)

// timelineCap bounds merged timelines to short bullets.
const timelineCap = 5

// DateRange is one care episode's span.
type DateRange struct {
	Start string
	End   string
}

// LevelTwoDetail holds fields disclosed from visible level 2 upward. Modeled
// as its own struct so level-gated fields cannot be read where the level does
// not grant them.
type LevelTwoDetail struct {
	Interventions []string
	ResponseTrend record.Trend
}

// LevelThreeDetail holds fields disclosed only at visible level 3.
type LevelThreeDetail struct {
	RedFlags     []string
	Timeline     []string
	LastSeenDate string
}

// SharedSummary is the level-bounded merge across qualifying contributors.
// Conditions and date ranges are always present (level 1 is the floor for a
// summary to exist at all); higher-level blocks are nil when no contributor's
// visible level grants them.
type SharedSummary struct {
	Conditions               []string
	DateRanges               []DateRange
	ContributingClinicsCount int
	LevelTwo                 *LevelTwoDetail
	LevelThree               *LevelThreeDetail
}

// contributorSummary is one contributor's leveled view of its own records,
// collapsed to a single contribution before merging.
type contributorSummary struct {
	clinicID     string
	visibleLevel clinic.Level

	conditions []string
	dateRanges []DateRange

	interventions []string
	responseTrend record.Trend

	redFlags     []string
	timeline     []string
	lastSeenDate string
}

// summarizeContributor collapses a contributor's records into its leveled
// contribution. Within one contributor, the trend collapses to the worst
// severity and last-seen to the latest end date, matching how a clinic would
// report its own history.
func summarizeContributor(view ContributorView, records []record.PatientRecord) *contributorSummary {
	if view.VisibleLevel < clinic.LevelBasic || len(records) == 0 {
		return nil
	}

	cs := &contributorSummary{clinicID: view.ID, visibleLevel: view.VisibleLevel}

	var conditions []string
	for _, r := range records {
		conditions = append(conditions, r.Conditions...)
		if r.StartDate != "" && r.EndDate != "" {
			cs.dateRanges = append(cs.dateRanges, DateRange{Start: r.StartDate, End: r.EndDate})
		}
	}
	cs.conditions = pkgstrings.Union(conditions)

	if view.VisibleLevel >= clinic.LevelCollaborative {
		var interventions []string
		var trends []record.Trend
		for _, r := range records {
			interventions = append(interventions, r.Interventions...)
			if r.ResponseTrend.Valid() {
				trends = append(trends, r.ResponseTrend)
			}
		}
		cs.interventions = pkgstrings.Union(interventions)
		cs.responseTrend = worstTrend(trends)
	}

	if view.VisibleLevel >= clinic.LevelTrusted {
		var redFlags []string
		for _, r := range records {
			redFlags = append(redFlags, r.RedFlags...)
			cs.timeline = append(cs.timeline, r.Timeline...)
			if r.EndDate > cs.lastSeenDate {
				cs.lastSeenDate = r.EndDate
			}
		}
		cs.redFlags = pkgstrings.Union(redFlags)
	}

	return cs
}

// worstTrend picks the most severe trend: worse > plateau > improving.
func worstTrend(trends []record.Trend) record.Trend {
	worst := record.Trend("")
	for _, t := range trends {
		switch t {
		case record.TrendWorse:
			return record.TrendWorse
		case record.TrendPlateau:
			worst = record.TrendPlateau
		case record.TrendImproving:
			if worst == "" {
				worst = record.TrendImproving
			}
		}
	}
	return worst
}

// BuildSharedSummary merges the qualifying contributors' leveled summaries.
// List-valued fields are unioned preserving first-seen order; scalar fields
// come from the contributor with the highest visible level, ties broken by
// the incoming contributor ordering (ascending clinic id) for determinism.
//
// Returns nil when no contributor clears level 1 — a legitimate state, not an
// error.
func BuildSharedSummary(gate GateResult, recordsByClinic map[string][]record.PatientRecord) *SharedSummary {
	var parts []*contributorSummary
	for _, view := range gate.Contributors {
		if cs := summarizeContributor(view, recordsByClinic[view.ID]); cs != nil {
			parts = append(parts, cs)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	summary := &SharedSummary{}

	var conditions [][]string
	for _, p := range parts {
		conditions = append(conditions, p.conditions)
		summary.DateRanges = appendNewRanges(summary.DateRanges, p.dateRanges)
		summary.ContributingClinicsCount++
	}
	summary.Conditions = pkgstrings.Union(conditions...)

	mergeLevelTwo(summary, parts)
	mergeLevelThree(summary, parts)

	return summary
}

func mergeLevelTwo(summary *SharedSummary, parts []*contributorSummary) {
	var interventions [][]string
	trend := record.Trend("")
	trendLevel := clinic.LevelIsolated

	for _, p := range parts {
		if p.visibleLevel < clinic.LevelCollaborative {
			continue
		}
		interventions = append(interventions, p.interventions)
		if p.responseTrend != "" && p.visibleLevel > trendLevel {
			trend = p.responseTrend
			trendLevel = p.visibleLevel
		}
	}
	if len(interventions) == 0 {
		return
	}
	summary.LevelTwo = &LevelTwoDetail{
		Interventions: pkgstrings.Union(interventions...),
		ResponseTrend: trend,
	}
}

func mergeLevelThree(summary *SharedSummary, parts []*contributorSummary) {
	var redFlags [][]string
	var timeline []string
	lastSeen := ""
	lastSeenLevel := clinic.LevelIsolated
	found := false

	for _, p := range parts {
		if p.visibleLevel < clinic.LevelTrusted {
			continue
		}
		found = true
		redFlags = append(redFlags, p.redFlags)
		timeline = append(timeline, p.timeline...)
		if p.lastSeenDate != "" && p.visibleLevel > lastSeenLevel {
			lastSeen = p.lastSeenDate
			lastSeenLevel = p.visibleLevel
		}
	}
	if !found {
		return
	}
	if len(timeline) > timelineCap {
		timeline = timeline[:timelineCap]
	}
	summary.LevelThree = &LevelThreeDetail{
		RedFlags:     pkgstrings.Union(redFlags...),
		Timeline:     timeline,
		LastSeenDate: lastSeen,
	}
}

// appendNewRanges unions date ranges preserving first-seen order.
func appendNewRanges(existing, incoming []DateRange) []DateRange {
	for _, dr := range incoming {
		dup := false
		for _, have := range existing {
			if have == dr {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, dr)
		}
	}
	return existing
}
