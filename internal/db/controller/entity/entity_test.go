package entity_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/db/controller/entity"
	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/db/models"
)

func publications(db *gorm.DB) *entity.Resource[models.Publication] {
	return entity.New(db, entity.Options[models.Publication]{
		Slug:  "publications",
		Name:  "publication",
		Title: "Publications",
		Order: []clause.OrderByColumn{{Column: clause.Column{Name: "year"}, Desc: true}},
		Label: func(p *models.Publication) string { return p.Title },
		Detail: func(p *models.Publication) string {
			return fmt.Sprint(p.Year)
		},
	})
}

func education(db *gorm.DB) *entity.Resource[models.Education] {
	return entity.New(db, entity.Options[models.Education]{
		Slug:  "education",
		Name:  "education entry",
		Title: "Education",
		Order: []clause.OrderByColumn{{Column: clause.Column{Name: "order_index"}}},
		Label: func(e *models.Education) string { return e.Degree },
	})
}

func ignoreBase() cmp.Option {
	return cmpopts.IgnoreFields(models.Base{}, "ID", "CreatedAt", "UpdatedAt")
}

func TestCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	res := publications(dbtest.Open(t))

	body := []byte(`{
		"id": 999, "title": "X", "authors": "Y", "journal": "Z", "year": 2024, "type": "journal",
		"doi": "10.1/abc", "citations": 3
	}`)

	created, err := res.Create(ctx, body)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, uint64(999), created.ID, "client id is ignored")

	got, err := res.Get(ctx, created.ID)
	require.NoError(t, err)

	want := models.Publication{
		Title: "X", Authors: "Y", Journal: "Z", Year: 2024, Type: models.PublicationJournal,
		DOI: "10.1/abc", Citations: 3,
	}
	if diff := cmp.Diff(want, *got, ignoreBase()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, created.ID, got.ID)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	res := publications(dbtest.Open(t))

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "missing title", body: `{"authors":"a","year":2020,"type":"book"}`, wantMsg: "title is required"},
		{name: "missing year", body: `{"title":"t","authors":"a","type":"book"}`, wantMsg: "year is required"},
		{name: "bad type", body: `{"title":"t","authors":"a","year":2020,"type":"blog"}`, wantMsg: "type must be one of"},
		{name: "not an object", body: `[1,2]`, wantMsg: "request body must be a JSON object"},
		{name: "null", body: `null`, wantMsg: "request body must be a JSON object"},
		{name: "wrong field type", body: `{"title":"t","authors":"a","year":"soon","type":"book"}`, wantMsg: "invalid field value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := res.Create(ctx, []byte(tt.body))
			require.ErrorIs(t, err, apperror.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	n, err := res.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSpeechDateValidation(t *testing.T) {
	ctx := context.Background()
	res := entity.New(dbtest.Open(t), entity.Options[models.Speech]{Slug: "speeches", Name: "speech"})

	_, err := res.Create(ctx, []byte(`{"title":"t","event":"e","date":"March 2024"}`))
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	_, err = res.Create(ctx, []byte(`{"title":"t","event":"e","date":"2024-03-01"}`))
	require.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	res := publications(dbtest.Open(t))

	created, err := res.Create(ctx, []byte(`{"title":"Old","authors":"A","year":2020,"type":"book","pages":"1-10"}`))
	require.NoError(t, err)

	updated, err := res.Update(ctx, created.ID, []byte(`{"title":"New","year":2021,"id":42}`))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "1-10", updated.Pages, "untouched fields survive a partial update")

	got, err := res.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, 2021, got.Year)
	assert.Equal(t, "A", got.Authors)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)

	_, err = res.Update(ctx, created.ID, []byte(`{"title":""}`))
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = res.Update(ctx, created.ID+100, []byte(`{"title":"x"}`))
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "publication not found", err.Error())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	res := entity.New(dbtest.Open(t), entity.Options[models.GalleryImage]{Slug: "gallery-images", Name: "gallery image"})

	img, err := res.Create(ctx, []byte(`{"title":"Lab","image_url":"/uploads/images/a.png","category":"lab"}`))
	require.NoError(t, err)

	require.NoError(t, res.Delete(ctx, img.ID))

	_, err = res.Get(ctx, img.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	list, err := res.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.ErrorIs(t, res.Delete(ctx, img.ID), apperror.ErrNotFound)
}

func TestListOrderYearDesc(t *testing.T) {
	ctx := context.Background()
	res := publications(dbtest.Open(t))

	for _, y := range []int{2019, 2024, 2021, 2024} {
		_, err := res.Create(ctx, []byte(fmt.Sprintf(`{"title":"p%d","authors":"a","year":%d,"type":"journal"}`, y, y)))
		require.NoError(t, err)
	}

	list, err := res.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)

	years := make([]int, 0, len(list))
	for _, p := range list {
		years = append(years, p.Year)
	}

	assert.Equal(t, []int{2024, 2024, 2021, 2019}, years)
	assert.Less(t, list[0].ID, list[1].ID, "ties keep insertion order")
}

func TestRowsAndCollection(t *testing.T) {
	ctx := context.Background()

	var col entity.Collection = publications(dbtest.Open(t))

	assert.Equal(t, "publications", col.Slug())
	assert.Equal(t, "publication", col.Name())
	assert.Equal(t, "Publications", col.Title())

	created, err := col.CreateAny(ctx, []byte(`{"title":"T","authors":"A","year":2022,"type":"other"}`))
	require.NoError(t, err)

	pub, ok := created.(*models.Publication)
	require.True(t, ok)

	rows, err := col.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Row{{ID: pub.ID, Label: "T", Detail: "2022"}}, rows)

	list, err := col.ListAny(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = col.UpdateAny(ctx, pub.ID, []byte(`{"citations":7}`))
	require.NoError(t, err)

	got, err := col.GetAny(ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.(*models.Publication).Citations) //nolint:forcetypeassert

	n, err := col.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStoreFailureIsOpaque(t *testing.T) {
	ctx := context.Background()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	cause := errors.New("connection reset by peer")

	mock.ExpectQuery(`SELECT \* FROM "publications" ORDER BY "year" DESC,"id"`).WillReturnError(cause)
	mock.ExpectExec(`DELETE FROM "publications"`).WillReturnError(cause)

	res := publications(gdb)

	_, err = res.List(ctx)
	require.ErrorIs(t, err, apperror.ErrStore)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "internal error", apperror.Message(err))

	err = res.Delete(ctx, 1)
	require.ErrorIs(t, err, apperror.ErrStore)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEducationJSONDetails(t *testing.T) {
	ctx := context.Background()
	res := education(dbtest.Open(t))

	created, err := res.Create(ctx, []byte(`{"degree":"PhD","institution":"MIT","details":"{\"thesis\":\"On Things\"}"}`))
	require.NoError(t, err)

	got, err := res.Get(ctx, created.ID)
	require.NoError(t, err)

	var details struct {
		Thesis string `json:"thesis"`
	}
	require.NoError(t, got.Details.Decode(&details))
	assert.Equal(t, "On Things", details.Thesis)
}
