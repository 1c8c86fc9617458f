package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"shoplist-cli/internal/model"
)

type RenderOptions struct {
	// OpenOnly leaves completed items out of the category sections.
	OpenOnly bool
}

// RenderListMarkdown renders a list as a printable checklist grouped by
// category, in the fixed category order.
func RenderListMarkdown(l model.ShoppingList, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(l.Name))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + l.ID)
	if !l.CreatedAt.IsZero() {
		writeLn("- Created: " + l.CreatedAt.UTC().Format(time.RFC3339))
	}
	writeLn(fmt.Sprintf("- Progress: %d/%d items completed (%d%%)", l.CompletedCount(), len(l.Items), l.Progress()))
	writeLn("")

	groups := map[model.Category][]model.ShoppingItem{}
	for _, it := range l.Items {
		if opt.OpenOnly && it.Completed {
			continue
		}
		groups[it.Category] = append(groups[it.Category], it)
	}
	if len(groups) == 0 {
		writeLn("_Nothing left to buy._")
		return buf.String()
	}

	for _, c := range model.Categories() {
		items := groups[c]
		if len(items) == 0 {
			continue
		}
		writeLn("## " + c.Label())
		writeLn("")
		for _, it := range items {
			box := "[ ]"
			if it.Completed {
				box = "[x]"
			}
			writeLn("- " + box + " " + strings.TrimSpace(it.Name))
		}
		writeLn("")
	}
	return strings.TrimRight(buf.String(), "\n") + "\n"
}

// RenderIndexMarkdown renders the table of contents linking every exported list.
func RenderIndexMarkdown(lists []model.ShoppingList) string {
	var buf bytes.Buffer
	buf.WriteString("# Shopping lists\n\n")
	if len(lists) == 0 {
		buf.WriteString("_No lists yet._\n")
		return buf.String()
	}
	buf.WriteString("| List | Done | Progress |\n")
	buf.WriteString("|---|---|---|\n")
	for _, l := range lists {
		name := strings.ReplaceAll(strings.TrimSpace(l.Name), "|", `\|`)
		fmt.Fprintf(&buf, "| [%s](lists/%s.md) | %d/%d | %d%% |\n", name, l.ID, l.CompletedCount(), len(l.Items), l.Progress())
	}
	return buf.String()
}
