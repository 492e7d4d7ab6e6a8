package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DeckSchema is the top-level JSON structure a language model is asked to
// produce for one presentation.
type DeckSchema struct {
	Title  string        `json:"title"`
	Slides []SlideSchema `json:"slides"`
}

// SlideSchema is one slide as it appears in the raw JSON.
type SlideSchema struct {
	Heading      string       `json:"heading"`
	BulletPoints []BulletItem `json:"bullet_points"`
	KeyMessage   string       `json:"key_message,omitempty"`
	ImgKeywords  string       `json:"img_keywords,omitempty"`
}

// ColumnSchema is the object form of a bullet item: a column with its own
// heading and bullet list, used in pairs for two-column slides.
type ColumnSchema struct {
	Heading      string   `json:"heading"`
	BulletPoints []string `json:"bullet_points"`
}

// BulletKind discriminates the three accepted shapes of a bullet_points
// element.
type BulletKind int

const (
	// KindInvalid marks an element whose JSON type is not a string, array,
	// or column object. Such elements are dropped downstream with a warning.
	KindInvalid BulletKind = iota
	KindText
	KindGroup
	KindColumn
)

// BulletItem is one element of a slide's bullet_points array. The JSON form
// is polymorphic: a plain string, an array of strings (a one-level nested
// sub-list), or an object with heading + bullet_points (a column).
type BulletItem struct {
	Kind   BulletKind
	Text   string        // KindText
	Group  []string      // KindGroup, flattened to strings
	Column *ColumnSchema // KindColumn

	// Flattened is set when an array element nested deeper than the single
	// supported sub-list level, or a column's bullet list contained
	// non-string entries, and the contents were flattened in place.
	Flattened bool
}

// UnmarshalJSON resolves the polymorphic bullet element once, so downstream
// code never inspects raw JSON shapes.
func (b *BulletItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty bullet element")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*b = BulletItem{Kind: KindText, Text: s}
		return nil

	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		group, flattened, err := flattenStrings(raw)
		if err != nil {
			return err
		}
		*b = BulletItem{Kind: KindGroup, Group: group, Flattened: flattened}
		return nil

	case '{':
		var col rawColumn
		if err := json.Unmarshal(trimmed, &col); err != nil {
			return err
		}
		items, flattened, err := flattenStrings(col.BulletPoints)
		if err != nil {
			return err
		}
		*b = BulletItem{
			Kind:      KindColumn,
			Column:    &ColumnSchema{Heading: col.Heading, BulletPoints: items},
			Flattened: flattened,
		}
		return nil

	default:
		// Numbers, booleans, null. Keep the element so the builder can
		// report it, but mark it invalid.
		*b = BulletItem{Kind: KindInvalid}
		return nil
	}
}

// MarshalJSON writes the element back in its canonical JSON form.
func (b BulletItem) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case KindText:
		return json.Marshal(b.Text)
	case KindGroup:
		return json.Marshal(b.Group)
	case KindColumn:
		return json.Marshal(b.Column)
	default:
		return []byte("null"), nil
	}
}

// rawColumn tolerates nested arrays inside a column's bullet list.
type rawColumn struct {
	Heading      string            `json:"heading"`
	BulletPoints []json.RawMessage `json:"bullet_points"`
}

// flattenStrings collects every string in a possibly nested array. Only one
// sub-list level is supported by the deck model; anything deeper is folded
// into the same list and reported via the flattened flag.
func flattenStrings(raw []json.RawMessage) ([]string, bool, error) {
	var out []string
	flattened := false

	for _, elem := range raw {
		trimmed := bytes.TrimSpace(elem)
		if len(trimmed) == 0 {
			continue
		}
		switch trimmed[0] {
		case '"':
			var s string
			if err := json.Unmarshal(trimmed, &s); err != nil {
				return nil, false, err
			}
			out = append(out, s)
		case '[':
			var nested []json.RawMessage
			if err := json.Unmarshal(trimmed, &nested); err != nil {
				return nil, false, err
			}
			inner, _, err := flattenStrings(nested)
			if err != nil {
				return nil, false, err
			}
			out = append(out, inner...)
			flattened = true
		default:
			// Non-string entry inside a sub-list; skip it.
			flattened = true
		}
	}

	return out, flattened, nil
}
