package clinic

// Level is the ordinal context level gating how much shared detail a clinic
// may see. It is always derived from opt-in state and contribution percentage,
// never stored.
type Level int

const (
	LevelIsolated      Level = 0
	LevelBasic         Level = 1
	LevelCollaborative Level = 2
	LevelTrusted       Level = 3
)

// Contribution thresholds for each level. The level function is a step
// function with breakpoints exactly at these values.
const (
	ThresholdBasic         = 10
	ThresholdCollaborative = 40
	ThresholdTrusted       = 80
)

// LevelFor computes the context level for a contribution percentage. Clinics
// that have not opted in are always Level 0 regardless of percentage.
func LevelFor(optedIn bool, contributionPct int) Level {
	switch {
	case !optedIn || contributionPct < ThresholdBasic:
		return LevelIsolated
	case contributionPct < ThresholdCollaborative:
		return LevelBasic
	case contributionPct < ThresholdTrusted:
		return LevelCollaborative
	default:
		return LevelTrusted
	}
}

// Status returns the participation badge for a level.
func (l Level) Status() string {
	switch l {
	case LevelBasic:
		return "Basic"
	case LevelCollaborative:
		return "Collaborative"
	case LevelTrusted:
		return "Trusted Contributor"
	default:
		return "Isolated"
	}
}

// MinLevel returns the smaller of two levels; the reciprocity rule in one place.
func MinLevel(a, b Level) Level {
	if a < b {
		return a
	}
	return b
}

// Clinic is a network participant. Level and status are derived via LevelFor
// so they can never go stale relative to the stored settings.
type Clinic struct {
	ID              string
	Name            string
	OptedIn         bool
	ContributionPct int
}

// Level returns the clinic's current context level.
func (c Clinic) Level() Level {
	return LevelFor(c.OptedIn, c.ContributionPct)
}
