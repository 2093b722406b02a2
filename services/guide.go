package services

import (
	"strings"

	"ecoscan-backend/models"

	"golang.org/x/text/cases"
)

// GuideSearch filters the static reference by case-insensitive substring
// match over type and instructions. An empty term returns everything.
func GuideSearch(term string) []models.GuideEntry {
	term = strings.TrimSpace(term)
	if term == "" {
		return models.GuideEntries
	}
	// cases.Caser is stateful, so build one per call.
	fold := cases.Fold()
	needle := fold.String(term)
	var matches []models.GuideEntry
	for _, entry := range models.GuideEntries {
		if strings.Contains(fold.String(entry.Type), needle) ||
			strings.Contains(fold.String(entry.Instructions), needle) {
			matches = append(matches, entry)
		}
	}
	return matches
}
