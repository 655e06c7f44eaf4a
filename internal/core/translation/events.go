package translation

// EventKind identifies what changed in the store.
type EventKind string

const (
	EventRecordAdded   EventKind = "record.added"
	EventRecordUpdated EventKind = "record.updated"
	EventRecordRemoved EventKind = "record.removed"
	EventHydrated      EventKind = "store.hydrated"
)

// Event is delivered synchronously to subscribers after a mutation has been
// applied. RecordID is empty for EventHydrated.
type Event struct {
	Kind     EventKind
	RecordID string
}

// Structural reports whether the event changes which records exist, as
// opposed to changing fields of an existing record.
func (e Event) Structural() bool {
	return e.Kind != EventRecordUpdated
}
