package audit

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events with record-keeping significance:
	// archival state changes and permanent deletions of care records.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers authentication outcomes and lockouts.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for debugging.
	CategoryOperations EventCategory = "operations"
)

type AuditEvent string

const (
	// Record lifecycle events
	EventRecordCreated  AuditEvent = "record_created"
	EventRecordUpdated  AuditEvent = "record_updated"
	EventRecordArchived AuditEvent = "record_archived"
	EventRecordRestored AuditEvent = "record_restored"
	EventRecordPurged   AuditEvent = "record_purged"
	EventRecordDeleted  AuditEvent = "record_deleted"

	// Retention events
	EventSweepCompleted AuditEvent = "retention_sweep_completed"
	EventSweepAborted   AuditEvent = "retention_sweep_aborted"

	// Auth events
	EventUserCreated          AuditEvent = "user_created"
	EventLoginSucceeded       AuditEvent = "login_succeeded"
	EventAuthFailed           AuditEvent = "auth_failed"
	EventAuthLockoutTriggered AuditEvent = "auth_lockout_triggered"
	EventAuthLockoutRejected  AuditEvent = "auth_lockout_rejected"
	EventAuthLockoutCleared   AuditEvent = "auth_lockout_cleared"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventRecordArchived: CategoryCompliance,
	EventRecordRestored: CategoryCompliance,
	EventRecordPurged:   CategoryCompliance,
	EventRecordDeleted:  CategoryCompliance,
	EventSweepCompleted: CategoryCompliance,
	EventSweepAborted:   CategoryCompliance,
	EventUserCreated:    CategoryCompliance,

	EventAuthFailed:           CategorySecurity,
	EventAuthLockoutTriggered: CategorySecurity,
	EventAuthLockoutRejected:  CategorySecurity,
	EventAuthLockoutCleared:   CategorySecurity,
	EventLoginSucceeded:       CategorySecurity,

	EventRecordCreated: CategoryOperations,
	EventRecordUpdated: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
