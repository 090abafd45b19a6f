package sharing

import "carelink/internal/clinic"

// levelUnlocks is the static table of what each level newly discloses. It is
// purely descriptive; both the locked preview and the what-if calculator read
// from it so the two surfaces can never drift apart.
var levelUnlocks = map[clinic.Level][]string{
	clinic.LevelBasic: {
		"Conditions and date ranges",
		"Contributing clinics count",
	},
	clinic.LevelCollaborative: {
		"Intervention categories",
		"Response trend (improving/plateau/worse)",
	},
	clinic.LevelTrusted: {
		"Red flags",
		"Timeline (short bullets)",
		"Last seen date",
	},
}

// levelThresholds pairs each attainable level with the minimal contribution
// percentage that reaches it, in ascending order.
var levelThresholds = []struct {
	Pct   int
	Level clinic.Level
}{
	{clinic.ThresholdBasic, clinic.LevelBasic},
	{clinic.ThresholdCollaborative, clinic.LevelCollaborative},
	{clinic.ThresholdTrusted, clinic.LevelTrusted},
}

// NextLevelUnlocks lists the field names newly available one level above the
// given one. At the top level there is nothing left to unlock.
func NextLevelUnlocks(level clinic.Level) []string {
	unlocks, ok := levelUnlocks[level+1]
	if !ok {
		return []string{}
	}
	return append([]string{}, unlocks...)
}

// WhatIfScenario describes one not-yet-attained level: the threshold to
// reach it, what it unlocks, and the minimal increase needed from the current
// percentage.
type WhatIfScenario struct {
	TargetPct      int
	TargetLevel    clinic.Level
	Unlocks        []string
	IncreaseNeeded int
}

// WhatIf derives unlock scenarios for every level above the current one,
// ordered by ascending target level. Pure; no side effects.
func WhatIf(optedIn bool, currentPct int) []WhatIfScenario {
	currentLevel := clinic.LevelFor(optedIn, currentPct)

	scenarios := []WhatIfScenario{}
	for _, threshold := range levelThresholds {
		if threshold.Level <= currentLevel {
			continue
		}
		increase := threshold.Pct - currentPct
		if increase < 0 {
			increase = 0
		}
		scenarios = append(scenarios, WhatIfScenario{
			TargetPct:      threshold.Pct,
			TargetLevel:    threshold.Level,
			Unlocks:        append([]string{}, levelUnlocks[threshold.Level]...),
			IncreaseNeeded: increase,
		})
	}
	return scenarios
}
