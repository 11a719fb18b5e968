package outbox

// Status values for audit rows persisted beside entity changes. Rows are
// written pending inside the same transaction as the entity mutation; the
// relay worker flips them to published after the bus accepts the event.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
)
