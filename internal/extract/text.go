package extract

import (
	"strings"

	"github.com/ppiankov/tgextract/internal/model"
)

// Text derives the displayable text of a message.
// A plain string "text" field wins over "text_entities"; newlines become spaces.
// Messages with neither form yield an empty string.
func Text(msg model.Message) string {
	if text, ok := msg.String("text"); ok {
		return flatten(text)
	}

	entities, ok := msg.List("text_entities")
	if !ok {
		return ""
	}

	parts := make([]string, 0, len(entities))
	for _, raw := range entities {
		parts = append(parts, flatten(entityText(raw)))
	}
	return strings.Join(parts, " ")
}

// entityText returns the entity's text payload, or "" when it has none
func entityText(raw any) string {
	entity, ok := raw.(map[string]any)
	if !ok {
		return ""
	}
	text, _ := entity["text"].(string)
	return text
}

func flatten(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
