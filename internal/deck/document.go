package deck

// LayoutKind is the visual layout derived for a slide from the shape of its
// content.
type LayoutKind string

const (
	LayoutStandard     LayoutKind = "standard"
	LayoutTwoColumn    LayoutKind = "two_column"
	LayoutIconGrid     LayoutKind = "icon_grid"
	LayoutStepSequence LayoutKind = "step_sequence"
)

// Document is the validated, in-memory representation of one presentation.
// It is immutable once handed to rendering.
type Document struct {
	Title  string
	Slides []Slide
}

// Slide is one slide of a document.
type Slide struct {
	Heading       string
	Content       []ContentNode
	KeyMessage    string
	ImageKeywords string
	Layout        LayoutKind
}

// ContentNode is the resolved form of one bullet_points element. It is a
// closed set: TextBullet, BulletGroup, or Column.
type ContentNode interface {
	contentNode()
}

// TextBullet is a single bullet line. Step and Icon are extracted from the
// literal source prefixes (">> " and "[[name]] ") and the prefixes are
// stripped before storage.
type TextBullet struct {
	Text string
	Icon string
	Step bool
}

// BulletGroup is a nested sub-list of bullets, displayed one indent level
// below the point where it appears. Exactly one nesting level is supported.
type BulletGroup struct {
	Items []TextBullet
}

// Column is one side of a two-column slide.
type Column struct {
	Heading string
	Items   []TextBullet
}

func (TextBullet) contentNode()  {}
func (BulletGroup) contentNode() {}
func (Column) contentNode()      {}
