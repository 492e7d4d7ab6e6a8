package repair

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/amrenholt/deckbuild/internal/deck"
	"github.com/amrenholt/deckbuild/internal/schema"
)

// rawDeck defers slide decoding so that one bad slide cannot poison the
// whole document.
type rawDeck struct {
	Title  *string           `json:"title"`
	Slides []json.RawMessage `json:"slides"`
}

// Repair coerces raw model output into a well-formed deck schema. It
// extracts the JSON candidate, runs the repair passes until one parse
// succeeds, then applies the schema checks: individually invalid slides are
// dropped with a warning; structural defects are fatal.
func Repair(raw string) (*schema.DeckSchema, []deck.Warning, error) {
	candidate := extractCandidate(raw)
	if candidate == "" {
		return nil, nil, ErrNoJSONFound
	}

	parsed, err := parseWithPasses(candidate)
	if err != nil {
		return nil, nil, err
	}

	return checkSchema(parsed)
}

// parseWithPasses attempts a structural parse of the candidate, applying the
// repair passes cumulatively in order until one attempt succeeds.
func parseWithPasses(candidate string) (*rawDeck, error) {
	text := candidate

	parsed, err := parseRaw(text)
	if err == nil {
		return parsed, nil
	}

	for _, p := range repairPasses() {
		text = p.apply(text)
		parsed, err = parseRaw(text)
		if err == nil {
			return parsed, nil
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return nil, fmt.Errorf("%w: unparseable after repair passes at byte offset %d: %v",
			ErrMalformedSchema, syntaxErr.Offset, err)
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedSchema, err)
}

func parseRaw(text string) (*rawDeck, error) {
	var d rawDeck
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// checkSchema enforces the required top-level fields and decodes slides one
// by one, dropping the invalid ones.
func checkSchema(d *rawDeck) (*schema.DeckSchema, []deck.Warning, error) {
	if d.Title == nil {
		return nil, nil, fmt.Errorf("%w: missing required field %q", ErrMalformedSchema, "title")
	}
	if d.Slides == nil {
		return nil, nil, fmt.Errorf("%w: %q is missing or not an array", ErrMalformedSchema, "slides")
	}
	if len(d.Slides) == 0 {
		return nil, nil, ErrEmptyDeck
	}

	out := &schema.DeckSchema{Title: *d.Title}
	var warnings []deck.Warning

	for i, rawSlide := range d.Slides {
		slide, err := decodeSlide(rawSlide)
		if err != nil {
			warnings = append(warnings, deck.Warnf(i, deck.WarnSlideDropped,
				"slide %d dropped: %v", i+1, err))
			continue
		}
		out.Slides = append(out.Slides, slide)
	}

	if len(out.Slides) == 0 {
		return nil, warnings, fmt.Errorf("%w: all %d slides were invalid", ErrEmptyDeck, len(d.Slides))
	}

	return out, warnings, nil
}

func decodeSlide(raw json.RawMessage) (schema.SlideSchema, error) {
	// bullet_points must be present, not merely empty, so decode the key
	// set separately from the typed slide.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return schema.SlideSchema{}, fmt.Errorf("not an object: %v", err)
	}
	if _, ok := keys["bullet_points"]; !ok {
		return schema.SlideSchema{}, errors.New("missing required field \"bullet_points\"")
	}

	var s schema.SlideSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return schema.SlideSchema{}, err
	}
	if strings.TrimSpace(s.Heading) == "" {
		return schema.SlideSchema{}, errors.New("missing or empty \"heading\"")
	}
	return s, nil
}
