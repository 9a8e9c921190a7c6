package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/db/models"
)

// Document is the YAML layout read by Import. Every list item is a record in the
// JSON field names of its table.
type Document struct {
	Settings      map[string]any   `yaml:"settings"`
	Hero          []map[string]any `yaml:"hero"`
	Education     []map[string]any `yaml:"education"`
	Publications  []map[string]any `yaml:"publications"`
	Speeches      []map[string]any `yaml:"speeches"`
	ResearchAreas []map[string]any `yaml:"research_areas"`
	Achievements  []map[string]any `yaml:"achievements"`
	Awards        []map[string]any `yaml:"awards"`
	Memberships   []map[string]any `yaml:"memberships"`
	Gallery       []map[string]any `yaml:"gallery_images"`
	Testimonials  []map[string]any `yaml:"testimonials"`
	Initiatives   []map[string]any `yaml:"community_initiatives"`
}

// ImportResult counts the imported rows per collection slug plus settings.
type ImportResult map[string]int

// Total is the number of imported rows.
func (r ImportResult) Total() int {
	n := 0
	for _, v := range r {
		n += v
	}

	return n
}

// Keys returns the counted slugs sorted.
func (r ImportResult) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// ParseDocument decodes YAML rejecting unknown sections.
func ParseDocument(r io.Reader) (*Document, error) {
	doc := new(Document)

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(doc); err != nil {
		if err == io.EOF { //nolint:errorlint
			return doc, nil
		}

		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for k, v := range doc.Settings {
		doc.Settings[k] = plainValue(v)
	}

	for _, items := range [][]map[string]any{
		doc.Hero, doc.Education, doc.Publications, doc.Speeches, doc.ResearchAreas, doc.Achievements,
		doc.Awards, doc.Memberships, doc.Gallery, doc.Testimonials, doc.Initiatives,
	} {
		for _, item := range items {
			for k, v := range item {
				item[k] = plainValue(v)
			}
		}
	}

	return doc, nil
}

// plainValue turns YAML timestamps back into text. Dates become YYYY-MM-DD as the
// models expect, values with a time of day become RFC 3339.
func plainValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(time.DateOnly)
		}

		return t.Format(time.RFC3339)
	case map[string]any:
		for k, e := range t {
			t[k] = plainValue(e)
		}
	case []any:
		for i, e := range t {
			t[i] = plainValue(e)
		}
	}

	return v
}

// Import stores every record of doc in one transaction. A record failing
// validation aborts the import and names its section and position.
func Import(ctx context.Context, db *gorm.DB, doc *Document) (ImportResult, error) {
	result := ImportResult{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat := New(tx)

		if len(doc.Settings) > 0 {
			values := make(map[string]models.JSON, len(doc.Settings))
			for k, v := range doc.Settings {
				values[k] = models.MustJSON(v)
			}

			if _, err := setting.UpsertMany(ctx, tx, values); err != nil {
				return fmt.Errorf("settings: %w", err)
			}

			result[SettingsStatKey] = len(values)
		}

		sections := []struct {
			slug  string
			items []map[string]any
		}{
			{cat.Hero.Slug(), doc.Hero},
			{cat.Education.Slug(), doc.Education},
			{cat.Publications.Slug(), doc.Publications},
			{cat.Speeches.Slug(), doc.Speeches},
			{cat.ResearchAreas.Slug(), doc.ResearchAreas},
			{cat.Achievements.Slug(), doc.Achievements},
			{cat.Awards.Slug(), doc.Awards},
			{cat.Memberships.Slug(), doc.Memberships},
			{cat.Gallery.Slug(), doc.Gallery},
			{cat.Testimonials.Slug(), doc.Testimonials},
			{cat.Initiatives.Slug(), doc.Initiatives},
		}

		for _, sec := range sections {
			if len(sec.items) == 0 {
				continue
			}

			col, _ := cat.Lookup(sec.slug)

			for i, item := range sec.items {
				body, err := json.Marshal(item)
				if err != nil {
					return fmt.Errorf("%s[%d]: %w", sec.slug, i, err)
				}

				if _, err = col.CreateAny(ctx, body); err != nil {
					return fmt.Errorf("%s[%d]: %w", sec.slug, i, err)
				}
			}

			result[sec.slug] = len(sec.items)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
