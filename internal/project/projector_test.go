package project

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/tgextract/internal/model"
	"github.com/stretchr/testify/require"
)

func TestProject_FieldsInConfiguredOrder(t *testing.T) {
	p, err := NewProjector([]string{"text", "id", "date", "from"}, "%Y-%m-%d %H:%M:%S")
	require.NoError(t, err)

	msg := model.Message{
		"from": "Alice",
		"date": "2023-05-01T12:00:00",
		"id":   json.Number("42"),
		"text": "ignored, derived text is used",
	}

	record, err := p.Project(msg, "I love Cats!!")
	require.NoError(t, err)

	want := model.Record{
		{Name: "text", Value: "I love Cats"},
		{Name: "id", Value: json.Number("42")},
		{Name: "date", Value: "2023-05-01 12:00:00"},
		{Name: "from", Value: "Alice"},
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_MissingFieldBecomesEmptyString(t *testing.T) {
	p, err := NewProjector([]string{"forwarded_from"}, "%Y")
	require.NoError(t, err)

	record, err := p.Project(model.Message{"text": "x"}, "x")
	require.NoError(t, err)
	require.Equal(t, []string{"forwarded_from"}, record.Names())

	v, ok := record.Get("forwarded_from")
	require.True(t, ok)
	require.Equal(t, "", v)
}

func TestProject_DateErrors(t *testing.T) {
	p, err := NewProjector([]string{"date"}, "%Y-%m-%d")
	require.NoError(t, err)

	tests := []struct {
		name string
		msg  model.Message
	}{
		{"missing", model.Message{}},
		{"not a string", model.Message{"date": json.Number("1682942400")}},
		{"garbage", model.Message{"date": "yesterday"}},
		{"wrong order", model.Message{"date": "01-05-2023 12:00:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Project(tt.msg, "text")
			require.Error(t, err)

			var dateErr *model.DateFormatError
			require.True(t, errors.As(err, &dateErr), "expected DateFormatError, got %T", err)
		})
	}
}

func TestProject_DateNotNeededWhenNotProjected(t *testing.T) {
	p, err := NewProjector([]string{"text"}, "%Y")
	require.NoError(t, err)

	_, err = p.Project(model.Message{"date": "not a date"}, "hello")
	require.NoError(t, err)
}

func TestProject_DatePatterns(t *testing.T) {
	msg := model.Message{"date": "2023-05-01T09:07:03"}

	tests := []struct {
		pattern string
		want    string
	}{
		{"%Y-%m-%d %H:%M:%S", "2023-05-01 09:07:03"},
		{"%d.%m.%Y", "01.05.2023"},
		{"%H:%M", "09:07"},
		{"%b %d, %Y", "May 01, 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := NewProjector([]string{"date"}, tt.pattern)
			require.NoError(t, err)

			record, err := p.Project(msg, "")
			require.NoError(t, err)

			v, _ := record.Get("date")
			require.Equal(t, tt.want, v)
		})
	}
}

func TestParseISO(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2023-05-01T12:00:00", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)},
		{"2023-05-01 12:00:00", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)},
		{"2023-05-01T12:00:00.250", time.Date(2023, 5, 1, 12, 0, 0, 250_000_000, time.UTC)},
		{"2023-05-01T12:00", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)},
		{"2023-05-01", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2023-05-01T12:00:00Z", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseISO(tt.in)
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestParseISO_WithOffset(t *testing.T) {
	got, err := ParseISO("2023-05-01T12:00:00+03:00")
	require.NoError(t, err)

	_, offset := got.Zone()
	require.Equal(t, 3*60*60, offset)
	require.Equal(t, 12, got.Hour())
}

func TestNewProjector_BadPattern(t *testing.T) {
	_, err := NewProjector([]string{"date"}, "%Q")
	require.Error(t, err)
}
