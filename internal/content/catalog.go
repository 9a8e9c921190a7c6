// Package content binds every portfolio table to a typed entity resource and loads
// the data the public pages and the dashboard need.
package content

import (
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-cms/folio/internal/db/controller/entity"
	"github.com/folio-cms/folio/internal/db/models"
)

func asc(column string) []clause.OrderByColumn {
	return []clause.OrderByColumn{{Column: clause.Column{Name: column}}}
}

func desc(column string) []clause.OrderByColumn {
	return []clause.OrderByColumn{{Column: clause.Column{Name: column}, Desc: true}}
}

func year(y int) string {
	if y == 0 {
		return ""
	}

	return strconv.Itoa(y)
}

func span(from, to int, ongoing bool) string {
	switch {
	case from == 0:
		return year(to)
	case ongoing:
		return year(from) + " - present"
	case to == 0:
		return year(from)
	default:
		return year(from) + " - " + year(to)
	}
}

// Catalog holds one resource per content table.
type Catalog struct {
	db *gorm.DB

	Education     *entity.Resource[models.Education]
	Publications  *entity.Resource[models.Publication]
	Speeches      *entity.Resource[models.Speech]
	ResearchAreas *entity.Resource[models.ResearchArea]
	Achievements  *entity.Resource[models.Achievement]
	Awards        *entity.Resource[models.Award]
	Memberships   *entity.Resource[models.Membership]
	Gallery       *entity.Resource[models.GalleryImage]
	Testimonials  *entity.Resource[models.Testimonial]
	Initiatives   *entity.Resource[models.CommunityInitiative]
	Hero          *entity.Resource[models.Hero]

	collections []entity.Collection
	bySlug      map[string]entity.Collection
}

// New builds the catalog on db.
func New(db *gorm.DB) *Catalog {
	c := &Catalog{db: db}

	c.Education = entity.New(db, entity.Options[models.Education]{
		Slug: "education", Name: "education entry", Title: "Education",
		Order:  asc("order_index"),
		Label:  func(e *models.Education) string { return e.Degree + ", " + e.Institution },
		Detail: func(e *models.Education) string { return span(e.StartYear, e.EndYear, false) },
	})
	c.Publications = entity.New(db, entity.Options[models.Publication]{
		Slug: "publications", Name: "publication", Title: "Publications",
		Order:  desc("year"),
		Label:  func(p *models.Publication) string { return p.Title },
		Detail: func(p *models.Publication) string { return year(p.Year) + " " + p.Type },
	})
	c.Speeches = entity.New(db, entity.Options[models.Speech]{
		Slug: "speeches", Name: "speech", Title: "Speeches",
		Order:  desc("date"),
		Label:  func(s *models.Speech) string { return s.Title },
		Detail: func(s *models.Speech) string { return s.Date + " " + s.Event },
	})
	c.ResearchAreas = entity.New(db, entity.Options[models.ResearchArea]{
		Slug: "research-areas", Name: "research area", Title: "Research areas",
		Order: asc("order_index"),
		Label: func(r *models.ResearchArea) string { return r.Title },
	})
	c.Achievements = entity.New(db, entity.Options[models.Achievement]{
		Slug: "achievements", Name: "achievement", Title: "Achievements",
		Order:  asc("order_index"),
		Label:  func(a *models.Achievement) string { return a.Title },
		Detail: func(a *models.Achievement) string { return year(a.Year) },
	})
	c.Awards = entity.New(db, entity.Options[models.Award]{
		Slug: "awards", Name: "award", Title: "Awards",
		Order:  desc("year"),
		Label:  func(a *models.Award) string { return a.Title },
		Detail: func(a *models.Award) string { return year(a.Year) + " " + a.Organization },
	})
	c.Memberships = entity.New(db, entity.Options[models.Membership]{
		Slug: "memberships", Name: "membership", Title: "Professional memberships",
		Order:  asc("order_index"),
		Label:  func(m *models.Membership) string { return m.Organization },
		Detail: func(m *models.Membership) string { return span(m.StartYear, m.EndYear, m.IsOngoing) },
	})
	c.Gallery = entity.New(db, entity.Options[models.GalleryImage]{
		Slug: "gallery-images", Name: "gallery image", Title: "Gallery",
		Order:  asc("order_index"),
		Label:  func(g *models.GalleryImage) string { return g.Title },
		Detail: func(g *models.GalleryImage) string { return g.Category },
	})
	c.Testimonials = entity.New(db, entity.Options[models.Testimonial]{
		Slug: "testimonials", Name: "testimonial", Title: "Testimonials",
		Order: asc("order_index"),
		Label: func(t *models.Testimonial) string { return t.Name },
		Detail: func(t *models.Testimonial) string {
			if t.IsActive {
				return "active"
			}

			return "hidden"
		},
	})
	c.Initiatives = entity.New(db, entity.Options[models.CommunityInitiative]{
		Slug: "community-initiatives", Name: "community initiative", Title: "Community initiatives",
		Order: asc("order_index"),
		Label: func(i *models.CommunityInitiative) string { return i.Title },
	})
	c.Hero = entity.New(db, entity.Options[models.Hero]{
		Slug: "hero", Name: "hero section", Title: "Hero",
		Label: func(h *models.Hero) string { return h.Name },
	})

	c.collections = []entity.Collection{
		c.Hero, c.Education, c.Publications, c.Speeches, c.ResearchAreas, c.Achievements,
		c.Awards, c.Memberships, c.Gallery, c.Testimonials, c.Initiatives,
	}

	c.bySlug = make(map[string]entity.Collection, len(c.collections))
	for _, col := range c.collections {
		c.bySlug[col.Slug()] = col
	}

	return c
}

// DB returns the database the catalog works on.
func (c *Catalog) DB() *gorm.DB {
	return c.db
}

// Collections returns every collection in navigation order.
func (c *Catalog) Collections() []entity.Collection {
	return c.collections
}

// Lookup returns the collection behind a route segment.
func (c *Catalog) Lookup(slug string) (entity.Collection, bool) {
	col, ok := c.bySlug[slug]
	return col, ok
}
