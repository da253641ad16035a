package ui

// InputHistory keeps the lines entered on the command line so they can be
// recalled with the arrow keys
type InputHistory struct {
	entries        []string
	currentIndex   int // -1 when not navigating
	maxEntries     int
	temporaryInput string // input before navigation started
}

// NewInputHistory creates an empty history holding at most maxEntries lines
func NewInputHistory(maxEntries int) *InputHistory {
	return &InputHistory{
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// Add stores an entry. Empty entries and repeats of the last entry are ignored.
func (h *InputHistory) Add(entry string) {
	if entry == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		h.Reset()
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}
	h.Reset()
}

// Previous returns the entry before the current one
func (h *InputHistory) Previous() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}

	if h.currentIndex < 0 {
		h.currentIndex = len(h.entries) - 1
	} else if h.currentIndex > 0 {
		h.currentIndex--
	}
	return h.entries[h.currentIndex], true
}

// Next returns the entry after the current one, or the saved input once
// navigation moves past the newest entry
func (h *InputHistory) Next() (string, bool) {
	if h.currentIndex < 0 {
		return "", false
	}

	h.currentIndex++
	if h.currentIndex >= len(h.entries) {
		temp := h.temporaryInput
		h.Reset()
		return temp, true
	}
	return h.entries[h.currentIndex], true
}

// Reset stops navigating
func (h *InputHistory) Reset() {
	h.currentIndex = -1
	h.temporaryInput = ""
}

// SetTemporary stores the input to restore when navigating past the newest entry
func (h *InputHistory) SetTemporary(input string) {
	h.temporaryInput = input
}

// IsNavigating reports whether an entry is being recalled
func (h *InputHistory) IsNavigating() bool {
	return h.currentIndex >= 0
}

// Len returns the number of entries
func (h *InputHistory) Len() int {
	return len(h.entries)
}
