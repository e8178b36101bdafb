package shorthand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizeOne(t *testing.T, prop, value string) map[string]string {
	t.Helper()
	out, _, warnings := Normalize(map[string]string{prop: value})
	require.Empty(t, warnings, "expected clean expansion for %s: %s", prop, value)
	return out
}

func TestBoxShorthandExpansion(t *testing.T) {
	t.Run("one value fills all sides", func(t *testing.T) {
		out := normalizeOne(t, "margin", "10px")
		assert.Equal(t, "10px", out["margin-top"])
		assert.Equal(t, "10px", out["margin-right"])
		assert.Equal(t, "10px", out["margin-bottom"])
		assert.Equal(t, "10px", out["margin-left"])
		assert.NotContains(t, out, "margin")
	})

	t.Run("two values split vertical and horizontal", func(t *testing.T) {
		out := normalizeOne(t, "margin", "10px 5px")
		assert.Equal(t, "10px", out["margin-top"])
		assert.Equal(t, "5px", out["margin-right"])
		assert.Equal(t, "10px", out["margin-bottom"])
		assert.Equal(t, "5px", out["margin-left"])
	})

	t.Run("three values mirror left from right", func(t *testing.T) {
		out := normalizeOne(t, "padding", "1px 2px 3px")
		assert.Equal(t, "1px", out["padding-top"])
		assert.Equal(t, "2px", out["padding-right"])
		assert.Equal(t, "3px", out["padding-bottom"])
		assert.Equal(t, "2px", out["padding-left"])
	})

	t.Run("four values assign clockwise", func(t *testing.T) {
		out := normalizeOne(t, "inset", "1px 2px 3px 4px")
		assert.Equal(t, "1px", out["top"])
		assert.Equal(t, "2px", out["right"])
		assert.Equal(t, "3px", out["bottom"])
		assert.Equal(t, "4px", out["left"])
	})

	t.Run("five values is malformed and passes through", func(t *testing.T) {
		out, stats, warnings := Normalize(map[string]string{"margin": "1px 2px 3px 4px 5px"})
		require.Len(t, warnings, 1)
		assert.Equal(t, "1px 2px 3px 4px 5px", out["margin"])
		assert.Equal(t, 0, stats.ShorthandsExpanded)
	})
}

func TestBorderExpansion(t *testing.T) {
	t.Run("full border fans out to all sides", func(t *testing.T) {
		out := normalizeOne(t, "border", "2px dashed red")
		assert.Equal(t, "2px", out["border-top-width"])
		assert.Equal(t, "dashed", out["border-right-style"])
		assert.Equal(t, "red", out["border-bottom-color"])
		assert.Equal(t, "2px", out["border-left-width"])
	})

	t.Run("missing tokens take CSS defaults", func(t *testing.T) {
		out := normalizeOne(t, "border", "solid")
		assert.Equal(t, "medium", out["border-top-width"])
		assert.Equal(t, "solid", out["border-top-style"])
		assert.Equal(t, "currentcolor", out["border-top-color"])
	})

	t.Run("single side", func(t *testing.T) {
		out := normalizeOne(t, "border-top", "1px solid #333")
		assert.Equal(t, "1px", out["border-top-width"])
		assert.Equal(t, "solid", out["border-top-style"])
		assert.Equal(t, "#333", out["border-top-color"])
	})

	t.Run("per channel variants follow the box rule", func(t *testing.T) {
		out := normalizeOne(t, "border-width", "1px 2px 3px")
		assert.Equal(t, "1px", out["border-top-width"])
		assert.Equal(t, "2px", out["border-left-width"])
	})
}

func TestBorderRadiusExpansion(t *testing.T) {
	t.Run("single axis", func(t *testing.T) {
		out := normalizeOne(t, "border-radius", "10px 20px")
		assert.Equal(t, "10px", out["border-top-left-radius"])
		assert.Equal(t, "20px", out["border-top-right-radius"])
		assert.Equal(t, "10px", out["border-bottom-right-radius"])
		assert.Equal(t, "20px", out["border-bottom-left-radius"])
	})

	t.Run("dual axis joins horizontal and vertical", func(t *testing.T) {
		out := normalizeOne(t, "border-radius", "10px / 5px 15px")
		assert.Equal(t, "10px 5px", out["border-top-left-radius"])
		assert.Equal(t, "10px 15px", out["border-top-right-radius"])
		assert.Equal(t, "10px 5px", out["border-bottom-right-radius"])
		assert.Equal(t, "10px 15px", out["border-bottom-left-radius"])
	})
}

func TestFontExpansion(t *testing.T) {
	t.Run("full grammar", func(t *testing.T) {
		out := normalizeOne(t, "font", "italic bold 12px/1.5 Georgia, serif")
		assert.Equal(t, "italic", out["font-style"])
		assert.Equal(t, "bold", out["font-weight"])
		assert.Equal(t, "12px", out["font-size"])
		assert.Equal(t, "1.5", out["line-height"])
		assert.Equal(t, "Georgia, serif", out["font-family"])
	})

	t.Run("size and family only", func(t *testing.T) {
		out := normalizeOne(t, "font", "16px Arial")
		assert.Equal(t, "16px", out["font-size"])
		assert.Equal(t, "Arial", out["font-family"])
		assert.NotContains(t, out, "font-weight")
	})

	t.Run("unparsable falls back to family", func(t *testing.T) {
		out := normalizeOne(t, "font", "caption")
		assert.Equal(t, "caption", out["font-family"])
		assert.NotContains(t, out, "font-size")
	})
}

func TestFlexExpansion(t *testing.T) {
	cases := []struct {
		value               string
		grow, shrink, basis string
	}{
		{"initial", "0", "1", "auto"},
		{"auto", "1", "1", "auto"},
		{"none", "0", "0", "auto"},
		{"2", "2", "1", "0%"},
		{"200px", "1", "1", "200px"},
		{"1 0 200px", "1", "0", "200px"},
		{"2 3", "2", "3", "auto"},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			out := normalizeOne(t, "flex", tc.value)
			assert.Equal(t, tc.grow, out["flex-grow"])
			assert.Equal(t, tc.shrink, out["flex-shrink"])
			assert.Equal(t, tc.basis, out["flex-basis"])
		})
	}
}

func TestBackgroundExpansion(t *testing.T) {
	t.Run("color and image", func(t *testing.T) {
		out := normalizeOne(t, "background", "red url(bg.png)")
		assert.Equal(t, "red", out["background-color"])
		assert.Equal(t, "url(bg.png)", out["background-image"])
	})

	t.Run("gradient", func(t *testing.T) {
		out := normalizeOne(t, "background", "linear-gradient(to right, red, blue)")
		assert.Equal(t, "linear-gradient(to right, red, blue)", out["background-image"])
		assert.NotContains(t, out, "background-color")
	})

	t.Run("ambiguous input preserved verbatim", func(t *testing.T) {
		out := normalizeOne(t, "background", "red center / cover no-repeat")
		assert.Equal(t, "red center / cover no-repeat", out["background-color"])
	})
}

func TestMiscExpansion(t *testing.T) {
	t.Run("flex-flow", func(t *testing.T) {
		out := normalizeOne(t, "flex-flow", "column wrap")
		assert.Equal(t, "column", out["flex-direction"])
		assert.Equal(t, "wrap", out["flex-wrap"])
	})

	t.Run("gap", func(t *testing.T) {
		out := normalizeOne(t, "gap", "10px 20px")
		assert.Equal(t, "10px", out["row-gap"])
		assert.Equal(t, "20px", out["column-gap"])
	})

	t.Run("overflow", func(t *testing.T) {
		out := normalizeOne(t, "overflow", "hidden")
		assert.Equal(t, "hidden", out["overflow-x"])
		assert.Equal(t, "hidden", out["overflow-y"])
	})

	t.Run("grid splits rows and columns", func(t *testing.T) {
		out := normalizeOne(t, "grid", "auto-flow / 1fr 1fr")
		assert.Equal(t, "auto-flow", out["grid-template-rows"])
		assert.Equal(t, "1fr 1fr", out["grid-template-columns"])
	})

	t.Run("grid-area", func(t *testing.T) {
		out := normalizeOne(t, "grid-area", "1 / 2 / 3 / 4")
		assert.Equal(t, "1", out["grid-row-start"])
		assert.Equal(t, "2", out["grid-column-start"])
		assert.Equal(t, "3", out["grid-row-end"])
		assert.Equal(t, "4", out["grid-column-end"])
	})

	t.Run("transition", func(t *testing.T) {
		out := normalizeOne(t, "transition", "opacity 0.3s ease-in 0.1s")
		assert.Equal(t, "opacity", out["transition-property"])
		assert.Equal(t, "0.3s", out["transition-duration"])
		assert.Equal(t, "ease-in", out["transition-timing-function"])
		assert.Equal(t, "0.1s", out["transition-delay"])
	})

	t.Run("animation", func(t *testing.T) {
		out := normalizeOne(t, "animation", "3s ease-in 1s infinite reverse both running slidein")
		assert.Equal(t, "3s", out["animation-duration"])
		assert.Equal(t, "1s", out["animation-delay"])
		assert.Equal(t, "ease-in", out["animation-timing-function"])
		assert.Equal(t, "infinite", out["animation-iteration-count"])
		assert.Equal(t, "reverse", out["animation-direction"])
		assert.Equal(t, "both", out["animation-fill-mode"])
		assert.Equal(t, "running", out["animation-play-state"])
		assert.Equal(t, "slidein", out["animation-name"])
	})

	t.Run("text-decoration", func(t *testing.T) {
		out := normalizeOne(t, "text-decoration", "underline wavy red")
		assert.Equal(t, "underline", out["text-decoration-line"])
		assert.Equal(t, "wavy", out["text-decoration-style"])
		assert.Equal(t, "red", out["text-decoration-color"])
	})

	t.Run("list-style", func(t *testing.T) {
		out := normalizeOne(t, "list-style", "square inside url(dot.png)")
		assert.Equal(t, "square", out["list-style-type"])
		assert.Equal(t, "inside", out["list-style-position"])
		assert.Equal(t, "url(dot.png)", out["list-style-image"])
	})

	t.Run("outline", func(t *testing.T) {
		out := normalizeOne(t, "outline", "thin dotted blue")
		assert.Equal(t, "thin", out["outline-width"])
		assert.Equal(t, "dotted", out["outline-style"])
		assert.Equal(t, "blue", out["outline-color"])
	})
}

func TestNormalizeBehavior(t *testing.T) {
	t.Run("longhand-only input is returned unchanged", func(t *testing.T) {
		decls := map[string]string{
			"margin-top": "4px",
			"color":      "red",
			"display":    "flex",
		}
		out, stats, warnings := Normalize(decls)
		assert.Equal(t, decls, out)
		assert.Equal(t, 0, stats.ShorthandsExpanded)
		assert.Empty(t, warnings)
	})

	t.Run("normalization is idempotent", func(t *testing.T) {
		first, _, _ := Normalize(map[string]string{"margin": "10px 5px", "color": "red"})
		second, stats, warnings := Normalize(first)
		assert.Equal(t, first, second)
		assert.Equal(t, 0, stats.ShorthandsExpanded)
		assert.Empty(t, warnings)
	})

	t.Run("reset keywords are dropped", func(t *testing.T) {
		out, _, warnings := Normalize(map[string]string{
			"margin":  "initial",
			"padding": "unset",
			"border":  "revert",
			"flex":    "",
		})
		assert.Empty(t, out)
		assert.Empty(t, warnings)
	})

	t.Run("flex initial expands instead of dropping", func(t *testing.T) {
		out, stats, warnings := Normalize(map[string]string{
			"flex": "initial",
		})
		assert.Empty(t, warnings)
		assert.Equal(t, 1, stats.ShorthandsExpanded)
		assert.Equal(t, "0", out["flex-grow"])
		assert.Equal(t, "1", out["flex-shrink"])
		assert.Equal(t, "auto", out["flex-basis"])

		// The keyword carve-out is per shorthand; flex: unset still drops.
		out, _, _ = Normalize(map[string]string{"flex": "unset"})
		assert.Empty(t, out)
	})

	t.Run("unknown properties pass through", func(t *testing.T) {
		out := normalizeOne(t, "-x-custom-thing", "whatever 12 33")
		assert.Equal(t, "whatever 12 33", out["-x-custom-thing"])
	})

	t.Run("stats count originals and results", func(t *testing.T) {
		_, stats, _ := Normalize(map[string]string{"margin": "1px", "color": "red"})
		assert.Equal(t, 2, stats.OriginalProperties)
		assert.Equal(t, 5, stats.NormalizedProperties)
		assert.Equal(t, 1, stats.ShorthandsExpanded)
	})

	t.Run("one bad declaration never aborts the rest", func(t *testing.T) {
		out, stats, warnings := Normalize(map[string]string{
			"margin":  "1px 2px 3px 4px 5px 6px",
			"padding": "8px",
		})
		require.Len(t, warnings, 1)
		assert.Equal(t, "8px", out["padding-top"])
		assert.Equal(t, "1px 2px 3px 4px 5px 6px", out["margin"])
		assert.Equal(t, 1, stats.ShorthandsExpanded)
	})
}

func TestIsShorthand(t *testing.T) {
	assert.True(t, IsShorthand("margin"))
	assert.True(t, IsShorthand("border-radius"))
	assert.False(t, IsShorthand("margin-top"))
	assert.False(t, IsShorthand("color"))
}
