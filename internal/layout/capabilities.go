package layout

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/amrenholt/deckbuild/internal/pptx"
)

// Capabilities records which layout roles a template fills. Each field is a
// layout index, or -1 when the template has no layout for that role.
type Capabilities struct {
	Title      int // centered title plus subtitle, used for the cover
	Content    int // title plus one body placeholder
	TwoContent int // title plus two side-by-side bodies
	TitleOnly  int // title with a free canvas below
}

// Usable reports whether content slides can be rendered at all.
func (c Capabilities) Usable() bool {
	return c.Content >= 0 || c.TitleOnly >= 0
}

// Analyze classifies a template's layouts by their placeholder inventory.
// The first layout matching each role wins, so templates that order their
// layouts the PowerPoint way resolve to the expected picks.
func Analyze(tpl *pptx.Template) Capabilities {
	caps := Capabilities{Title: -1, Content: -1, TwoContent: -1, TitleOnly: -1}

	for _, l := range tpl.Layouts {
		bodies := len(l.Bodies())
		switch {
		case hasCenterTitle(&l):
			if caps.Title == -1 {
				caps.Title = l.Index
			}
		case !l.HasTitle():
			// Blank and picture-only layouts fill no role.
		case bodies == 0:
			if caps.TitleOnly == -1 {
				caps.TitleOnly = l.Index
			}
		case bodies == 1:
			if caps.Content == -1 {
				caps.Content = l.Index
			}
		default:
			if caps.TwoContent == -1 {
				caps.TwoContent = l.Index
			}
		}
	}

	// A deck without a dedicated cover layout opens on the content layout,
	// or on the bare title layout when that is all the template offers.
	if caps.Title == -1 {
		caps.Title = caps.Content
	}
	if caps.Title == -1 {
		caps.Title = caps.TitleOnly
	}
	return caps
}

func hasCenterTitle(l *pptx.Layout) bool {
	for _, ph := range l.Placeholders {
		if ph.Type == pptx.PlaceholderCenterTitle {
			return true
		}
	}
	return false
}

// Template analysis is cached per path so re-rendering against the same
// template skips the XML walk.
var capCache = gocache.New(30*time.Minute, 10*time.Minute)

// For returns the capabilities for a template, consulting the cache when a
// path identifies it. Templates built in memory pass an empty path.
func For(path string, tpl *pptx.Template) Capabilities {
	if path == "" {
		return Analyze(tpl)
	}
	if cached, ok := capCache.Get(path); ok {
		return cached.(Capabilities)
	}
	caps := Analyze(tpl)
	capCache.Set(path, caps, gocache.DefaultExpiration)
	return caps
}
