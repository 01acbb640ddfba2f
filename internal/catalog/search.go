package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Hit is one search result.
type Hit struct {
	FolderID string
	Item     Item
	Score    int
	// Matched holds rune indexes into Label that matched the query.
	Matched []int
	Label   string
}

type searchSource struct {
	labels []string
	refs   []itemRef
}

func (s searchSource) String(i int) string { return s.labels[i] }
func (s searchSource) Len() int            { return len(s.labels) }

func (c *Catalog) searchSource() searchSource {
	var src searchSource
	for fi, f := range c.folders {
		for ii, it := range f.Items {
			src.labels = append(src.labels, it.Name)
			src.refs = append(src.refs, itemRef{folder: fi, item: ii})
		}
	}
	return src
}

// Search fuzzy-matches item display names. An empty query returns every item in
// catalog order, capped at limit (limit <= 0 means no cap).
func (c *Catalog) Search(query string, limit int) []Hit {
	if c == nil {
		return nil
	}
	src := c.searchSource()
	query = strings.TrimSpace(query)

	var out []Hit
	if query == "" {
		for i, ref := range src.refs {
			f := c.folders[ref.folder]
			out = append(out, Hit{FolderID: f.ID, Item: f.Items[ref.item], Label: src.labels[i]})
		}
	} else {
		for _, m := range fuzzy.FindFrom(query, src) {
			ref := src.refs[m.Index]
			f := c.folders[ref.folder]
			out = append(out, Hit{
				FolderID: f.ID,
				Item:     f.Items[ref.item],
				Score:    m.Score,
				Matched:  m.MatchedIndexes,
				Label:    m.Str,
			})
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
