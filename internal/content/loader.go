package content

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/db/models"
)

// UncategorizedGallery is the group name of gallery images without a category.
const UncategorizedGallery = "Uncategorized"

// SettingsStatKey is the key of the settings row count in Stats.
const SettingsStatKey = "settings"

// GalleryGroup is one category of the gallery.
type GalleryGroup struct {
	Category string
	Images   []models.GalleryImage
}

// Home is everything the public home page shows.
type Home struct {
	Settings      map[string]models.JSON
	Hero          *models.Hero
	Education     []models.Education
	Publications  []models.Publication
	Speeches      []models.Speech
	ResearchAreas []models.ResearchArea
	Achievements  []models.Achievement
	Awards        []models.Award
	Memberships   []models.Membership
	Gallery       []GalleryGroup
	Testimonials  []models.Testimonial
	Initiatives   []models.CommunityInitiative
}

// Setting returns the text of a site setting, empty when unset.
func (h *Home) Setting(key string) string {
	return h.Settings[key].Text()
}

// LoadHome reads every section concurrently. Each goroutine owns one field of the result.
func (c *Catalog) LoadHome(ctx context.Context) (*Home, error) {
	var (
		h       = new(Home)
		gallery []models.GalleryImage
		heroes  []models.Hero
		reviews []models.Testimonial
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() (err error) { h.Settings, err = setting.Map(egCtx, c.db); return })
	eg.Go(func() (err error) { heroes, err = c.Hero.List(egCtx); return })
	eg.Go(func() (err error) { h.Education, err = c.Education.List(egCtx); return })
	eg.Go(func() (err error) { h.Publications, err = c.Publications.List(egCtx); return })
	eg.Go(func() (err error) { h.Speeches, err = c.Speeches.List(egCtx); return })
	eg.Go(func() (err error) { h.ResearchAreas, err = c.ResearchAreas.List(egCtx); return })
	eg.Go(func() (err error) { h.Achievements, err = c.Achievements.List(egCtx); return })
	eg.Go(func() (err error) { h.Awards, err = c.Awards.List(egCtx); return })
	eg.Go(func() (err error) { h.Memberships, err = c.Memberships.List(egCtx); return })
	eg.Go(func() (err error) { gallery, err = c.Gallery.List(egCtx); return })
	eg.Go(func() (err error) { reviews, err = c.Testimonials.List(egCtx); return })
	eg.Go(func() (err error) { h.Initiatives, err = c.Initiatives.List(egCtx); return })

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	h.Hero = ActiveHero(heroes)
	h.Gallery = GroupGallery(gallery)
	h.Testimonials = ActiveTestimonials(reviews)

	return h, nil
}

// ActiveHero returns the first active hero, or the first one when none is active.
func ActiveHero(heroes []models.Hero) *models.Hero {
	for i := range heroes {
		if heroes[i].IsActive {
			return &heroes[i]
		}
	}

	if len(heroes) > 0 {
		return &heroes[0]
	}

	return nil
}

// GroupGallery groups images by category. Groups appear in the order their first
// image appears, images keep their list order.
func GroupGallery(images []models.GalleryImage) []GalleryGroup {
	var (
		groups []GalleryGroup
		index  = map[string]int{}
	)

	for _, img := range images {
		cat := img.Category
		if cat == "" {
			cat = UncategorizedGallery
		}

		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, GalleryGroup{Category: cat})
		}

		groups[i].Images = append(groups[i].Images, img)
	}

	return groups
}

// ActiveTestimonials keeps the testimonials marked active.
func ActiveTestimonials(all []models.Testimonial) []models.Testimonial {
	out := make([]models.Testimonial, 0, len(all))

	for _, t := range all {
		if t.IsActive {
			out = append(out, t)
		}
	}

	return out
}

// Stats counts the rows of every collection and the settings table concurrently.
func (c *Catalog) Stats(ctx context.Context) (map[string]int64, error) {
	var (
		mu    sync.Mutex
		stats = make(map[string]int64, len(c.collections)+1)
	)

	put := func(key string, n int64) {
		mu.Lock()
		stats[key] = n
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)

	for _, col := range c.collections {
		eg.Go(func() error {
			n, err := col.Count(egCtx)
			if err != nil {
				return err
			}

			put(col.Slug(), n)

			return nil
		})
	}

	eg.Go(func() error {
		n, err := setting.Count(egCtx, c.db)
		if err != nil {
			return err
		}

		put(SettingsStatKey, n)

		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}
