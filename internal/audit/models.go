package audit

import "time"

// Actions recorded by the audit trail.
const (
	ActionSettingsUpdated = "clinic_settings_updated"
	ActionHistoryReused   = "shared_history_reused"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Actor     string // clinic performing the action
	Action    string
	Subject   string // patient fingerprint or clinic id the action concerns
	Detail    string
}
