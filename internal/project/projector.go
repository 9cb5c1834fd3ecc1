// Package project reduces a matched message to the configured output fields.
package project

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/ppiankov/tgextract/internal/extract"
	"github.com/ppiankov/tgextract/internal/model"
)

// strategy computes one output value from a message and its derived text
type strategy func(msg model.Message, text string) (any, error)

// Projector builds records holding exactly the configured fields
type Projector struct {
	fields     []string
	strategies map[string]strategy
}

// NewProjector creates a projector for fields (in output order) using the
// strftime pattern dateFormat for the date field
func NewProjector(fields []string, dateFormat string) (*Projector, error) {
	layout, err := strftime.New(dateFormat, strftime.WithMicroseconds('f'))
	if err != nil {
		return nil, fmt.Errorf("date format %q: %w", dateFormat, err)
	}

	p := &Projector{
		fields: append([]string(nil), fields...),
	}
	p.strategies = map[string]strategy{
		"date": func(msg model.Message, _ string) (any, error) {
			return formatDate(msg, layout)
		},
		"text": func(_ model.Message, text string) (any, error) {
			return extract.Clean(text), nil
		},
	}
	return p, nil
}

// Fields returns the projected field names in output order
func (p *Projector) Fields() []string {
	return append([]string(nil), p.fields...)
}

// Project builds the record for msg. text is the message's already derived text.
func (p *Projector) Project(msg model.Message, text string) (model.Record, error) {
	record := make(model.Record, 0, len(p.fields))
	for _, name := range p.fields {
		apply, ok := p.strategies[name]
		if !ok {
			apply = passThrough(name)
		}
		value, err := apply(msg, text)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		record = append(record, model.Field{Name: name, Value: value})
	}
	return record, nil
}

// passThrough copies the raw field value, or "" when the message lacks it
func passThrough(name string) strategy {
	return func(msg model.Message, _ string) (any, error) {
		if v, ok := msg.Value(name); ok {
			return v, nil
		}
		return "", nil
	}
}

func formatDate(msg model.Message, layout *strftime.Strftime) (string, error) {
	raw, present := msg.Value("date")
	if !present {
		return "", &model.DateFormatError{Value: nil, Err: fmt.Errorf("date field missing")}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &model.DateFormatError{Value: raw, Err: fmt.Errorf("date is %T, not a string", raw)}
	}
	t, err := ParseISO(s)
	if err != nil {
		return "", &model.DateFormatError{Value: s, Err: err}
	}
	return layout.FormatString(t), nil
}

// isoLayouts are tried in order. Fractional seconds are accepted after the
// seconds field by time.Parse even when the layout omits them.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseISO parses the ISO-8601 timestamp forms found in chat exports.
// Timestamps without an offset are returned as-is in UTC.
func ParseISO(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", s)
}
