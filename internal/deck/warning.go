package deck

import "fmt"

// WarningCode classifies non-fatal conditions reported while building or
// rendering a deck.
type WarningCode string

const (
	WarnSlideDropped   WarningCode = "slide_dropped"
	WarnBulletDropped  WarningCode = "bullet_dropped"
	WarnGroupFlattened WarningCode = "group_flattened"
	WarnLayoutFallback WarningCode = "layout_fallback"
	WarnUnknownIcon    WarningCode = "unknown_icon"
	WarnFontReduced    WarningCode = "font_reduced"
	WarnOverflowDrop   WarningCode = "overflow_drop"
)

// Warning records a per-slide degradation that did not abort processing.
// Warnings are accumulated through the pipeline and returned alongside the
// successful output.
type Warning struct {
	// Slide is the zero-based slide index, or -1 for deck-level conditions.
	Slide   int
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	if w.Slide < 0 {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("slide %d: %s: %s", w.Slide+1, w.Code, w.Message)
}

// Warnf builds a Warning with a formatted message.
func Warnf(slide int, code WarningCode, format string, args ...any) Warning {
	return Warning{Slide: slide, Code: code, Message: fmt.Sprintf(format, args...)}
}
