package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrenholt/deckbuild/internal/deck"
	"github.com/amrenholt/deckbuild/internal/pptx"
)

func starterCaps(t *testing.T) Capabilities {
	t.Helper()
	tpl, err := pptx.StarterTemplate()
	require.NoError(t, err)
	return Analyze(tpl)
}

func TestAnalyzeStarterTemplate(t *testing.T) {
	caps := starterCaps(t)

	assert.Equal(t, pptx.StarterLayoutTitle, caps.Title)
	assert.Equal(t, pptx.StarterLayoutContent, caps.Content)
	assert.Equal(t, pptx.StarterLayoutTwoContent, caps.TwoContent)
	assert.Equal(t, pptx.StarterLayoutTitleOnly, caps.TitleOnly)
	assert.True(t, caps.Usable())
}

func TestAnalyzeCoverFallsBackToTitleOnly(t *testing.T) {
	tpl := &pptx.Template{Layouts: []pptx.Layout{{
		Name:         "Title Only",
		Placeholders: []pptx.Placeholder{{Type: pptx.PlaceholderTitle, Name: "Title 1"}},
	}}}

	caps := Analyze(tpl)

	assert.True(t, caps.Usable())
	assert.Equal(t, 0, caps.TitleOnly)
	assert.Equal(t, 0, caps.Title)
	assert.Equal(t, -1, caps.Content)
	assert.Equal(t, -1, caps.TwoContent)
}

func TestForCachesByPath(t *testing.T) {
	tpl, err := pptx.StarterTemplate()
	require.NoError(t, err)

	first := For("starter-test.pptx", tpl)
	second := For("starter-test.pptx", tpl)
	assert.Equal(t, first, second)
	assert.Equal(t, Analyze(tpl), For("", tpl))
}

func bullets(texts ...string) []deck.ContentNode {
	out := make([]deck.ContentNode, 0, len(texts))
	for _, txt := range texts {
		out = append(out, deck.TextBullet{Text: txt})
	}
	return out
}

func steps(n int) []deck.ContentNode {
	out := make([]deck.ContentNode, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, deck.TextBullet{Text: "do the thing", Step: true})
	}
	return out
}

func TestSelect(t *testing.T) {
	caps := starterCaps(t)
	pol := DefaultPolicy()

	tests := []struct {
		name       string
		slide      deck.Slide
		caps       Capabilities
		wantKind   deck.LayoutKind
		wantIndex  int
		wantCode   deck.WarningCode
		wantsFalls bool
	}{
		{
			name:      "standard slide binds content layout",
			slide:     deck.Slide{Layout: deck.LayoutStandard, Content: bullets("a", "b")},
			caps:      caps,
			wantKind:  deck.LayoutStandard,
			wantIndex: caps.Content,
		},
		{
			name: "two column binds two content layout",
			slide: deck.Slide{Layout: deck.LayoutTwoColumn, Content: []deck.ContentNode{
				deck.Column{Heading: "Pros", Items: []deck.TextBullet{{Text: "fast"}}},
				deck.Column{Heading: "Cons", Items: []deck.TextBullet{{Text: "new"}}},
			}},
			caps:      caps,
			wantKind:  deck.LayoutTwoColumn,
			wantIndex: caps.TwoContent,
		},
		{
			name: "two column falls back without a two body layout",
			slide: deck.Slide{Layout: deck.LayoutTwoColumn, Content: []deck.ContentNode{
				deck.Column{Heading: "Pros", Items: []deck.TextBullet{{Text: "fast"}}},
				deck.Column{Heading: "Cons", Items: []deck.TextBullet{{Text: "new"}}},
			}},
			caps:       Capabilities{Title: 0, Content: 1, TwoContent: -1, TitleOnly: 3},
			wantKind:   deck.LayoutStandard,
			wantIndex:  1,
			wantCode:   deck.WarnLayoutFallback,
			wantsFalls: true,
		},
		{
			name:      "four steps use the free canvas",
			slide:     deck.Slide{Layout: deck.LayoutStepSequence, Content: steps(4)},
			caps:      caps,
			wantKind:  deck.LayoutStepSequence,
			wantIndex: caps.TitleOnly,
		},
		{
			name:       "two steps fall back to a list",
			slide:      deck.Slide{Layout: deck.LayoutStepSequence, Content: steps(2)},
			caps:       caps,
			wantKind:   deck.LayoutStandard,
			wantIndex:  caps.Content,
			wantCode:   deck.WarnLayoutFallback,
			wantsFalls: true,
		},
		{
			name:       "seven steps fall back to a list",
			slide:      deck.Slide{Layout: deck.LayoutStepSequence, Content: steps(7)},
			caps:       caps,
			wantKind:   deck.LayoutStandard,
			wantIndex:  caps.Content,
			wantCode:   deck.WarnLayoutFallback,
			wantsFalls: true,
		},
		{
			name: "icon grid uses the free canvas",
			slide: deck.Slide{Layout: deck.LayoutIconGrid, Content: []deck.ContentNode{
				deck.TextBullet{Text: "Fast", Icon: "bolt"},
				deck.TextBullet{Text: "Safe", Icon: "shield"},
			}},
			caps:      caps,
			wantKind:  deck.LayoutIconGrid,
			wantIndex: caps.TitleOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, warns, err := Select(0, &tt.slide, tt.caps, pol)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, plan.Kind)
			assert.Equal(t, tt.wantIndex, plan.LayoutIndex)
			assert.Equal(t, tt.wantsFalls, plan.Fallback)
			if tt.wantCode != "" {
				require.NotEmpty(t, warns)
				assert.Equal(t, tt.wantCode, warns[0].Code)
			} else {
				assert.Empty(t, warns)
			}
		})
	}
}

func TestSelectNoUsableLayout(t *testing.T) {
	sl := deck.Slide{Layout: deck.LayoutStandard, Content: bullets("a")}
	_, _, err := Select(0, &sl, Capabilities{Title: -1, Content: -1, TwoContent: -1, TitleOnly: -1}, DefaultPolicy())
	assert.ErrorIs(t, err, ErrNoUsableLayout)
}

func TestSelectShrinksOverflowingText(t *testing.T) {
	long := strings.Repeat("measure twice cut once ", 8)
	texts := make([]string, 12)
	for i := range texts {
		texts[i] = long
	}
	sl := deck.Slide{Layout: deck.LayoutStandard, Content: bullets(texts...)}

	plan, warns, err := Select(3, &sl, starterCaps(t), DefaultPolicy())
	require.NoError(t, err)

	assert.Less(t, plan.FontPt, DefaultPolicy().BaseFontPt)

	codes := make(map[deck.WarningCode]bool)
	for _, w := range warns {
		assert.Equal(t, 3, w.Slide)
		codes[w.Code] = true
	}
	assert.True(t, codes[deck.WarnFontReduced])

	if plan.MaxBullets != -1 {
		assert.True(t, codes[deck.WarnOverflowDrop])
		assert.GreaterOrEqual(t, plan.MaxBullets, 1)
	}
}

func TestSelectShrinksOverflowingColumns(t *testing.T) {
	long := strings.Repeat("weigh the tradeoff carefully ", 6)
	items := make([]deck.TextBullet, 10)
	for i := range items {
		items[i] = deck.TextBullet{Text: long}
	}
	sl := deck.Slide{Layout: deck.LayoutTwoColumn, Content: []deck.ContentNode{
		deck.Column{Heading: "Pros", Items: items},
		deck.Column{Heading: "Cons", Items: []deck.TextBullet{{Text: "slow"}}},
	}}

	plan, warns, err := Select(2, &sl, starterCaps(t), DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, deck.LayoutTwoColumn, plan.Kind)
	assert.Equal(t, pptx.StarterLayoutTwoContent, plan.LayoutIndex)
	assert.False(t, plan.Fallback)
	assert.Less(t, plan.FontPt, DefaultPolicy().BaseFontPt)

	codes := make(map[deck.WarningCode]bool)
	for _, w := range warns {
		assert.Equal(t, 2, w.Slide)
		codes[w.Code] = true
	}
	assert.True(t, codes[deck.WarnFontReduced])
	assert.True(t, codes[deck.WarnOverflowDrop])

	require.Len(t, plan.ColumnItems, 2)
	assert.Greater(t, plan.ColumnItems[0], 0)
	assert.Less(t, plan.ColumnItems[0], len(items))
	assert.Equal(t, 1, plan.ColumnItems[1])
}

func TestSelectKeepsFittingColumnsIntact(t *testing.T) {
	sl := deck.Slide{Layout: deck.LayoutTwoColumn, Content: []deck.ContentNode{
		deck.Column{Heading: "Pros", Items: []deck.TextBullet{{Text: "fast"}, {Text: "cheap"}}},
		deck.Column{Heading: "Cons", Items: []deck.TextBullet{{Text: "risky"}}},
	}}

	plan, warns, err := Select(0, &sl, starterCaps(t), DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, DefaultPolicy().BaseFontPt, plan.FontPt)
	assert.Nil(t, plan.ColumnItems)
	assert.Empty(t, warns)
}

func TestSelectKeepsShortTextAtBaseFont(t *testing.T) {
	sl := deck.Slide{Layout: deck.LayoutStandard, Content: bullets("one", "two", "three")}
	plan, warns, err := Select(0, &sl, starterCaps(t), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy().BaseFontPt, plan.FontPt)
	assert.Equal(t, -1, plan.MaxBullets)
	assert.Empty(t, warns)
}
