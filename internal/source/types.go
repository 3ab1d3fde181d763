package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/five82/pick/internal/window"
)

// ItemListResponse is the object form accepted from a list endpoint. A bare
// JSON array of entries is accepted as well.
type ItemListResponse struct {
	Items []ItemPayload `json:"items"`
}

// ItemPayload is one entry on the wire. It decodes from either
// {"label": "...", "value": ...} or a plain JSON string. Numeric values are
// kept verbatim as their decimal text.
type ItemPayload struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// UnmarshalJSON accepts strings, objects with a string or numeric value, and
// objects whose value is missing or null.
func (p *ItemPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ItemPayload{Label: s, Value: s}
		return nil
	}

	var raw struct {
		Label string          `json:"label"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, err := scalarString(raw.Value)
	if err != nil {
		return err
	}
	*p = ItemPayload{Label: raw.Label, Value: value}
	return nil
}

// Item converts the payload to an engine item. A missing label falls back to
// the value and a missing value to the label.
func (p ItemPayload) Item() window.Item[string] {
	label := strings.TrimSpace(p.Label)
	value := p.Value
	switch {
	case label == "":
		label = value
	case value == "":
		value = label
	}
	return window.Item[string]{Label: label, Value: value}
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("item value must be a string or number, got %s", raw)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("item value must be a string or number, got %s", raw)
	}
	return n.String(), nil
}

// decodeItems accepts either ItemListResponse or a bare array.
func decodeItems(data []byte) ([]window.Item[string], error) {
	data = bytes.TrimSpace(data)
	var payload []ItemPayload
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	} else {
		var resp ItemListResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, err
		}
		payload = resp.Items
	}

	items := make([]window.Item[string], 0, len(payload))
	for _, p := range payload {
		it := p.Item()
		if it.Label == "" {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}
