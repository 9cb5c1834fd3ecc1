package model

// Document is the root of a Telegram chat export
type Document struct {
	Name     string    `json:"name,omitempty"`
	Type     string    `json:"type,omitempty"`
	Messages []Message `json:"messages"`
}

// Message is one entry of the export's message list.
// Values are decoded with json.Number for numbers so ids pass through unchanged.
type Message map[string]any

// Value returns the raw value of a field and whether it was present
func (m Message) Value(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// String returns the field as a string; ok is false when it is absent or not a string
func (m Message) String(name string) (string, bool) {
	v, ok := m[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// List returns the field as a list; ok is false when it is absent or not a list
func (m Message) List(name string) ([]any, bool) {
	v, ok := m[name]
	if !ok {
		return nil, false
	}
	l, ok := v.([]any)
	return l, ok
}
