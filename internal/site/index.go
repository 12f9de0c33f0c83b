package site

import (
	"sort"

	"github.com/starford/jera/internal/document"
)

// IndexItem is the projection of a document shown on index pages.
// Date and Summary are empty when the metadata lacks them.
type IndexItem struct {
	Title   string
	Kind    string
	Slug    string
	URL     string
	Date    string
	Summary string
	Tags    []string
}

// Indexes holds the derived site-wide views. Tags maps each tag name
// to the items carrying it, pointing into the Notes and Experiments
// lists; TagNames is sorted for deterministic iteration.
type Indexes struct {
	Notes       []IndexItem
	Experiments []IndexItem
	Tags        map[string][]*IndexItem
	TagNames    []string
}

// BuildIndexes projects discovered documents into the index views.
// Both lists sort date-descending on the stringified date, which is
// chronological only for ISO dates; other date shapes sort
// lexicographically. The tag map fills notes first, then experiments,
// preserving each list's sorted order within a tag.
func BuildIndexes(docs []SiteDocument) *Indexes {
	idx := &Indexes{Tags: make(map[string][]*IndexItem)}
	for _, sd := range docs {
		item := project(sd)
		if item.Kind == document.KindNote {
			idx.Notes = append(idx.Notes, item)
		} else {
			idx.Experiments = append(idx.Experiments, item)
		}
	}
	sortByDateDesc(idx.Notes)
	sortByDateDesc(idx.Experiments)

	for _, list := range [][]IndexItem{idx.Notes, idx.Experiments} {
		for i := range list {
			item := &list[i]
			for _, tag := range item.Tags {
				idx.Tags[tag] = append(idx.Tags[tag], item)
			}
		}
	}
	for tag := range idx.Tags {
		idx.TagNames = append(idx.TagNames, tag)
	}
	sort.Strings(idx.TagNames)

	return idx
}

func project(sd SiteDocument) IndexItem {
	m := sd.Document.Metadata
	title := m.String("title")
	if title == "" {
		title = sd.Slug
	}
	return IndexItem{
		Title:   title,
		Kind:    sd.Kind,
		Slug:    sd.Slug,
		URL:     "/" + sectionFor(sd.Kind) + "/" + sd.Slug + "/",
		Date:    m.String("date"),
		Summary: m.String("summary"),
		Tags:    m.StringList("tags"),
	}
}

// sortByDateDesc is stable so documents with equal dates keep their
// discovery order.
func sortByDateDesc(items []IndexItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
}
