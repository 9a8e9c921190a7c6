// Package siteinfo maps the well known site settings onto a typed struct for the admin settings form.
package siteinfo

import (
	"context"
	"reflect"

	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/db/models"
)

// Tab names of the settings form.
const (
	TabGeneral = "general"
	TabContact = "contact"
	TabSocial  = "social"
)

type (
	// General holds the site wide texts.
	General struct {
		SiteTitle   string `form:"site_title"   setting:"site_title"   validate:"required,max=120"`
		Tagline     string `form:"tagline"      setting:"tagline"      validate:"max=255"`
		FooterText  string `form:"footer_text"  setting:"footer_text"  validate:"max=512"`
		MetaSummary string `form:"meta_summary" setting:"meta_summary" validate:"max=320"`
	}

	// Contact holds the contact details shown in the footer.
	Contact struct {
		ContactEmail string `form:"contact_email" setting:"contact_email" validate:"omitempty,email"`
		Phone        string `form:"phone"         setting:"phone"         validate:"max=64"`
		Address      string `form:"address"       setting:"address"       validate:"max=512"`
	}

	// Social holds profile links.
	Social struct {
		GoogleScholar string `form:"google_scholar_url" setting:"google_scholar_url" validate:"omitempty,url"`
		ORCID         string `form:"orcid_url"          setting:"orcid_url"          validate:"omitempty,url"`
		LinkedIn      string `form:"linkedin_url"       setting:"linkedin_url"       validate:"omitempty,url"`
		GitHub        string `form:"github_url"         setting:"github_url"         validate:"omitempty,url"`
		ResearchGate  string `form:"researchgate_url"   setting:"researchgate_url"   validate:"omitempty,url"`
	}

	// Settings is the full settings form, one struct per tab.
	Settings struct {
		General General
		Contact Contact
		Social  Social
	}
)

// Tab returns the struct behind a tab name, nil for unknown tabs.
func (s *Settings) Tab(name string) any {
	switch name {
	case TabGeneral:
		return &s.General
	case TabContact:
		return &s.Contact
	case TabSocial:
		return &s.Social
	default:
		return nil
	}
}

// FromMap fills s from a settings map. Missing keys leave fields untouched.
func (s *Settings) FromMap(m map[string]models.JSON) {
	for _, tab := range []any{&s.General, &s.Contact, &s.Social} {
		eachField(tab, func(key string, f reflect.Value) {
			if v, ok := m[key]; ok {
				f.SetString(v.Text())
			}
		})
	}
}

// Values returns the settings of one tab as key → JSON string, ready for setting.UpsertMany.
func Values(tab any) map[string]models.JSON {
	out := map[string]models.JSON{}

	eachField(tab, func(key string, f reflect.Value) {
		out[key] = models.MustJSON(f.String())
	})

	return out
}

// Load reads all site settings.
func (s *Settings) Load(ctx context.Context, db *gorm.DB) error {
	m, err := setting.Map(ctx, db)
	if err != nil {
		return err
	}

	s.FromMap(m)

	return nil
}

// SaveTab upserts the fields of one tab in a single statement.
func (s *Settings) SaveTab(ctx context.Context, db *gorm.DB, name string) error {
	tab := s.Tab(name)
	if tab == nil {
		return nil
	}

	_, err := setting.UpsertMany(ctx, db, Values(tab))

	return err
}

func eachField(ptr any, fn func(key string, f reflect.Value)) {
	v := reflect.ValueOf(ptr).Elem()
	t := v.Type()

	for i := range t.NumField() {
		key := t.Field(i).Tag.Get("setting")
		if key == "" || v.Field(i).Kind() != reflect.String {
			continue
		}

		fn(key, v.Field(i))
	}
}
