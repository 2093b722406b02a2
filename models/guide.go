package models

import "github.com/gosimple/slug"

// GuideEntry is one row of the static waste-disposal reference.
type GuideEntry struct {
	Slug         string `json:"slug"`
	Type         string `json:"type"`
	Instructions string `json:"instructions"`
}

// GuideEntries is the full reference set served by GET /guide.
var GuideEntries = []GuideEntry{
	{Type: "Plastic", Instructions: "Recycle in blue bins."},
	{Type: "Paper", Instructions: "Recycle if clean, compost if soiled."},
	{Type: "Organic", Instructions: "Compost in green bins."},
	{Type: "Glass", Instructions: "Recycle in designated glass bins."},
	{Type: "Metal", Instructions: "Recycle aluminum and steel cans."},
}

func init() {
	for i := range GuideEntries {
		GuideEntries[i].Slug = slug.Make(GuideEntries[i].Type)
	}
}
