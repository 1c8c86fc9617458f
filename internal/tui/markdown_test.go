package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

func TestMarkdownStyle_RespectsTUITheme(t *testing.T) {
	t.Setenv("SHOPLIST_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("SHOPLIST_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyleConfig_DoesNotOverrideLinkStyles(t *testing.T) {
	t.Run("dark", func(t *testing.T) {
		got := markdownStyleConfig("dark")
		want := styles.DarkStyleConfig
		assertStylePrimitiveEqual(t, got.Link, want.Link)
		assertStylePrimitiveEqual(t, got.LinkText, want.LinkText)
	})

	t.Run("light", func(t *testing.T) {
		got := markdownStyleConfig("light")
		want := styles.LightStyleConfig
		assertStylePrimitiveEqual(t, got.Link, want.Link)
		assertStylePrimitiveEqual(t, got.LinkText, want.LinkText)
	})
}

func TestMarkdownStyleConfig_DropsDocumentMargin(t *testing.T) {
	cfg := markdownStyleConfig("dark")
	if cfg.Document.Margin == nil || *cfg.Document.Margin != 0 {
		t.Fatalf("expected zero document margin")
	}
	// The shared style config must not be mutated through the copy.
	if styles.DarkStyleConfig.Document.Margin != nil && *styles.DarkStyleConfig.Document.Margin == 0 {
		t.Fatalf("expected glamour's dark style to keep its margin")
	}
}

func TestRenderMarkdown_RendersHeadingText(t *testing.T) {
	t.Setenv("SHOPLIST_TUI_THEME", "dark")
	out := renderMarkdown("# Keys\n\nPress **n** to create a list.", 60)
	if !strings.Contains(out, "Keys") || !strings.Contains(out, "create a list") {
		t.Fatalf("expected rendered markdown to keep text; got %q", out)
	}
	if got := renderMarkdown("   ", 60); got != "" {
		t.Fatalf("expected empty output for blank markdown; got %q", got)
	}
}

func assertStylePrimitiveEqual(t *testing.T, got ansi.StylePrimitive, want ansi.StylePrimitive) {
	t.Helper()

	if strPtrValue(got.Color) != strPtrValue(want.Color) {
		t.Fatalf("Color: got %q want %q", strPtrValue(got.Color), strPtrValue(want.Color))
	}
	if strPtrValue(got.BackgroundColor) != strPtrValue(want.BackgroundColor) {
		t.Fatalf("BackgroundColor: got %q want %q", strPtrValue(got.BackgroundColor), strPtrValue(want.BackgroundColor))
	}
	if boolPtrValue(got.Bold) != boolPtrValue(want.Bold) {
		t.Fatalf("Bold: got %v want %v", boolPtrValue(got.Bold), boolPtrValue(want.Bold))
	}
	if boolPtrValue(got.Underline) != boolPtrValue(want.Underline) {
		t.Fatalf("Underline: got %v want %v", boolPtrValue(got.Underline), boolPtrValue(want.Underline))
	}
	if got.Prefix != want.Prefix {
		t.Fatalf("Prefix: got %q want %q", got.Prefix, want.Prefix)
	}
	if got.Suffix != want.Suffix {
		t.Fatalf("Suffix: got %q want %q", got.Suffix, want.Suffix)
	}
}

func strPtrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolPtrValue(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
