package cli

import (
	"fmt"
	"strings"

	"github.com/marune/backoffice/internal/model"
)

// RenderSidebar renders aggregated category groups the way the call-queue
// sidebar shows them: declared category order, counts, and descending-count
// subgroups indented beneath their category.
func RenderSidebar(kind model.EntityKind, groups []model.CategoryGroup) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s queue", kind)))
	b.WriteString("\n")

	if len(groups) == 0 {
		b.WriteString(SubtleStyle.Render("no categorized records"))
		b.WriteString("\n")
		return b.String()
	}

	for _, g := range groups {
		style := CategoryStyle(g.Color)
		b.WriteString(fmt.Sprintf("%s %s\n",
			style.Render(g.Label),
			BoldStyle.Render(fmt.Sprintf("(%d)", g.Count))))
		for _, sub := range g.Subgroups {
			b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %s (%d)", sub.Key, sub.Count)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderMembers renders one group's member ids, for queue drill-down.
func RenderMembers(group model.CategoryGroup) string {
	var b strings.Builder
	b.WriteString(CategoryStyle(group.Color).Render(group.Label))
	b.WriteString("\n")
	for _, id := range group.Members {
		b.WriteString("  " + id + "\n")
	}
	return b.String()
}
