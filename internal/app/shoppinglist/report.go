package shoppinglist

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"foodgram/internal/models"
)

// Row is one consolidated product line of the shopping list.
type Row struct {
	Name   string
	Unit   string
	Amount int64
}

type productKey struct {
	name string
	unit string
}

// Aggregate consolidates ingredient lines across recipes, keyed by the
// ingredient's (name, unit) identity. Amounts are summed with integer
// arithmetic only. Rows come back sorted by product name ascending,
// ties broken by unit, so the result does not depend on input order.
func Aggregate(lines []models.IngredientLine) []Row {
	totals := make(map[productKey]int64, len(lines))
	for _, line := range lines {
		totals[productKey{name: line.Name, unit: line.MeasurementUnit}] += line.Amount
	}

	rows := make([]Row, 0, len(totals))
	for key, amount := range totals {
		rows = append(rows, Row{Name: key.name, Unit: key.unit, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Unit < rows[j].Unit
	})

	return rows
}

// RenderReport renders the consolidated product rows and the
// contributing recipe names as the downloadable plain-text report.
// Rendering the same input twice yields byte-identical output.
func RenderReport(rows []Row, recipeNames []string) string {
	names := append([]string(nil), recipeNames...)
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Shopping list:\n")
	for i, row := range rows {
		fmt.Fprintf(&b, "%d. %s - %d %s\n", i+1, capitalize(row.Name), row.Amount, row.Unit)
	}
	b.WriteString("\nFor recipes:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	return b.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
