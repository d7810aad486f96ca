package buyflow

// State is the explicit buy-button state. There is no terminal success
// state: a successful checkout navigates away from the page entirely.
type State string

const (
	// StateIdle means the button is enabled and waiting for activation.
	StateIdle State = "idle"
	// StatePending means a session-creation call is in flight.
	StatePending State = "pending"
	// StateError means the last attempt failed and the transient message
	// is still visible. The button itself is already re-enabled.
	StateError State = "error"
)

// MessageSink displays the transient error message adjacent to a button.
// Implementations are expected to reuse their message slot rather than
// stacking repeated failures.
type MessageSink interface {
	ShowError(message string)
	HideError()
}

// Button owns the UI state for a single buy element. Each button carries
// its own product reference and message slot; nothing is shared between
// buttons.
type Button struct {
	ProductID   string
	ProductName string
	PriceCents  int64
	Currency    string

	Messages MessageSink

	label      string
	savedLabel string
	state      State
	disabled   bool
}

// NewButton binds a buy button to its product data.
func NewButton(productID, productName string, priceCents int64, currency, label string, messages MessageSink) *Button {
	return &Button{
		ProductID:   productID,
		ProductName: productName,
		PriceCents:  priceCents,
		Currency:    currency,
		Messages:    messages,
		label:       label,
		state:       StateIdle,
	}
}

// State returns the current button state.
func (b *Button) State() State {
	if b == nil {
		return StateIdle
	}
	return b.state
}

// Disabled reports whether the button rejects activation.
func (b *Button) Disabled() bool {
	return b != nil && b.disabled
}

// Label returns the currently displayed label.
func (b *Button) Label() string {
	if b == nil {
		return ""
	}
	return b.label
}

func (b *Button) beginPending(busyLabel string) {
	b.savedLabel = b.label
	b.label = busyLabel
	b.state = StatePending
	b.disabled = true
}

// failPending restores the button so the user can retry immediately; the
// error state only tracks that the message is still on screen.
func (b *Button) failPending() {
	b.label = b.savedLabel
	b.state = StateError
	b.disabled = false
}

func (b *Button) settleError() {
	if b.state == StateError {
		b.state = StateIdle
	}
}
