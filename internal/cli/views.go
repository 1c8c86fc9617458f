package cli

import (
	"fmt"
	"strings"
	"time"

	"shoplist-cli/internal/model"
)

// listSummary is the row shape of `lists ls`.
type listSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ItemsTotal int       `json:"itemsTotal"`
	ItemsDone  int       `json:"itemsDone"`
	Progress   int       `json:"progress"`
	CreatedAt  time.Time `json:"createdAt"`
}

func summarize(l model.ShoppingList) listSummary {
	return listSummary{
		ID:         l.ID,
		Name:       l.Name,
		ItemsTotal: len(l.Items),
		ItemsDone:  l.CompletedCount(),
		Progress:   l.Progress(),
		CreatedAt:  l.CreatedAt,
	}
}

type listSummaries []listSummary

func (s listSummaries) Headers() []string {
	return []string{"ID", "NAME", "DONE", "PROGRESS"}
}

func (s listSummaries) Rows() [][]string {
	rows := make([][]string, 0, len(s))
	for _, l := range s {
		rows = append(rows, []string{
			l.ID,
			l.Name,
			fmt.Sprintf("%d/%d", l.ItemsDone, l.ItemsTotal),
			fmt.Sprintf("%d%%", l.Progress),
		})
	}
	return rows
}

// listDetail is `lists show`: the list plus its progress.
type listDetail struct {
	model.ShoppingList
	Progress int `json:"progress"`
}

func (d listDetail) Headers() []string {
	return []string{"ID", "", "ITEM", "CATEGORY"}
}

func (d listDetail) Rows() [][]string {
	rows := make([][]string, 0, len(d.Items))
	for _, it := range d.Items {
		mark := "[ ]"
		if it.Completed {
			mark = "[x]"
		}
		rows = append(rows, []string{it.ID, mark, it.Name, it.Category.Label()})
	}
	return rows
}

type progressView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Done     int    `json:"done"`
	Total    int    `json:"total"`
	Progress int    `json:"progress"`
}

func (p progressView) Headers() []string { return []string{"ID", "NAME", "DONE", "PROGRESS"} }

func (p progressView) Rows() [][]string {
	return [][]string{{p.ID, p.Name, fmt.Sprintf("%d/%d", p.Done, p.Total), fmt.Sprintf("%d%%", p.Progress)}}
}

type categoryView struct {
	ID    model.Category `json:"id"`
	Label string         `json:"label"`
	// Open is the number of incomplete items in this category across all lists.
	Open int `json:"open"`
}

type categoryViews []categoryView

func (c categoryViews) Headers() []string { return []string{"ID", "LABEL", "OPEN"} }

func (c categoryViews) Rows() [][]string {
	rows := make([][]string, 0, len(c))
	for _, v := range c {
		rows = append(rows, []string{string(v.ID), v.Label, fmt.Sprintf("%d", v.Open)})
	}
	return rows
}

// envelope wraps payloads as {"data": ...} for JSON; text output renders the
// payload itself.
func envelope(app *App, v any) any {
	if strings.EqualFold(strings.TrimSpace(app.Format), "text") {
		return v
	}
	return map[string]any{"data": v}
}
