package session

// Notification is a transient user-facing message. Notifications are
// keyed by code so a repeated identical fault collapses into one entry
// instead of stacking.
type Notification struct {
	Code    string
	Message string
}

// Notifier collects the notifications currently on display.
type Notifier struct {
	byCode map[string]int
	items  []Notification
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{byCode: make(map[string]int)}
}

// Push adds or refreshes the notification for a code, keeping the
// original display order for a repeated code.
func (n *Notifier) Push(code, message string) {
	if i, ok := n.byCode[code]; ok {
		n.items[i].Message = message
		return
	}
	n.byCode[code] = len(n.items)
	n.items = append(n.items, Notification{Code: code, Message: message})
}

// Active returns the notifications in display order.
func (n *Notifier) Active() []Notification {
	return n.items
}

// Clear removes the notification for one code.
func (n *Notifier) Clear(code string) {
	i, ok := n.byCode[code]
	if !ok {
		return
	}
	n.items = append(n.items[:i], n.items[i+1:]...)
	delete(n.byCode, code)
	for j := i; j < len(n.items); j++ {
		n.byCode[n.items[j].Code] = j
	}
}

// ClearAll drops everything.
func (n *Notifier) ClearAll() {
	n.byCode = make(map[string]int)
	n.items = nil
}
