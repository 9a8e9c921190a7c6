package setting

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/db/models"
)

func seedSettings(t *testing.T, db *gorm.DB, settings map[string]string) {
	t.Helper()

	for k, v := range settings {
		require.NoError(t, db.Create(&models.Setting{Key: k, Value: models.MustJSON(v)}).Error, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		nilDB         bool
		key           string
		seed          map[string]string
		expectedError error
		expectedValue string
	}{
		{name: "nil database", nilDB: true, key: "test", expectedError: ErrDBNil},
		{name: "empty key", key: "", expectedError: ErrSettingKeyEmpty},
		{name: "setting not found", key: "nonexistent", expectedError: ErrSettingNotFound},
		{
			name:          "successful get",
			key:           "site_title",
			seed:          map[string]string{"site_title": "My Site", "contact_email": "me@example.com"},
			expectedValue: `"My Site"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := dbtest.Open(t)
			seedSettings(t, db, tc.seed)

			if tc.nilDB {
				db = nil
			}

			setting, err := Get(ctx, db, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.key, setting.Key)
			assert.JSONEq(t, tc.expectedValue, setting.Value.String())
		})
	}
}

func TestErrorClasses(t *testing.T) {
	assert.ErrorIs(t, ErrSettingNotFound, apperror.ErrNotFound)
	assert.ErrorIs(t, ErrSettingAlreadyExists, apperror.ErrConflict)
	assert.ErrorIs(t, ErrSettingKeyEmpty, apperror.ErrValidation)
}

func TestListAndMap(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	settings, err := List(ctx, db)
	require.NoError(t, err)
	assert.NotNil(t, settings)
	assert.Empty(t, settings)

	seedSettings(t, db, map[string]string{"b": "2", "a": "1", "c": "3"})

	settings, err = List(ctx, db)
	require.NoError(t, err)
	require.Len(t, settings, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{settings[0].Key, settings[1].Key, settings[2].Key})

	m, err := Map(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "2", m["b"].Text())

	n, err := Count(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	created, err := Create(ctx, db, "site_title", models.MustJSON("Portfolio"))
	require.NoError(t, err)
	assert.Equal(t, "site_title", created.Key)
	assert.NotZero(t, created.UpdatedAt)

	_, err = Create(ctx, db, "site_title", models.MustJSON("Other"))
	require.ErrorIs(t, err, ErrSettingAlreadyExists)

	got, err := Get(ctx, db, "site_title")
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", got.Value.Text())

	_, err = Create(ctx, db, "", nil)
	require.ErrorIs(t, err, ErrSettingKeyEmpty)
}

func TestCreateConcurrentSameKey(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	const writers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)

	for i := range writers {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := Create(ctx, db, "race", models.MustJSON(i))

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, ErrSettingAlreadyExists):
				conflicts++
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, writers-1, conflicts)

	var rows int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	_, err := Update(ctx, db, "missing", models.MustJSON("x"))
	require.ErrorIs(t, err, ErrSettingNotFound)

	var rows int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&rows).Error)
	assert.Zero(t, rows, "update must not create")

	seedSettings(t, db, map[string]string{"site_title": "Old"})

	before, err := Get(ctx, db, "site_title")
	require.NoError(t, err)

	updated, err := Update(ctx, db, "site_title", models.MustJSON(map[string]any{"en": "New"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":"New"}`, updated.Value.String())

	after, err := Get(ctx, db, "site_title")
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":"New"}`, after.Value.String())
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	_, err := Upsert(ctx, db, "contact_email", models.MustJSON("a@example.com"))
	require.NoError(t, err)

	_, err = Upsert(ctx, db, "contact_email", models.MustJSON("b@example.com"))
	require.NoError(t, err)

	got, err := Get(ctx, db, "contact_email")
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.Value.Text())

	n, err := Count(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpsertConcurrentSameKey(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := Upsert(ctx, db, "counter", models.MustJSON(i))
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	n, err := Count(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpsertMany(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	seedSettings(t, db, map[string]string{"site_title": "Old"})

	saved, err := UpsertMany(ctx, db, map[string]models.JSON{
		"site_title":    models.MustJSON("New"),
		"contact_email": models.MustJSON("me@example.com"),
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "contact_email", saved[0].Key)

	m, err := Map(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "New", m["site_title"].Text())
	assert.Equal(t, "me@example.com", m["contact_email"].Text())

	_, err = UpsertMany(ctx, db, map[string]models.JSON{"": nil})
	require.ErrorIs(t, err, ErrSettingKeyEmpty)

	empty, err := UpsertMany(ctx, db, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	seedSettings(t, db, map[string]string{"site_title": "x", "keep": "y"})

	require.NoError(t, Delete(ctx, db, "site_title"))
	require.NoError(t, Delete(ctx, db, "site_title"), "delete is idempotent")

	_, err := Get(ctx, db, "site_title")
	require.ErrorIs(t, err, ErrSettingNotFound)

	_, err = Get(ctx, db, "keep")
	require.NoError(t, err)

	require.ErrorIs(t, Delete(ctx, db, ""), ErrSettingKeyEmpty)
	require.ErrorIs(t, Delete(ctx, nil, "x"), ErrDBNil)
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	// Absent → Present
	_, err := Create(ctx, db, "k", models.MustJSON(1))
	require.NoError(t, err)

	// Present → Present
	_, err = Update(ctx, db, "k", models.MustJSON(2))
	require.NoError(t, err)

	// Present → Absent
	require.NoError(t, Delete(ctx, db, "k"))

	_, err = Update(ctx, db, "k", models.MustJSON(3))
	require.ErrorIs(t, err, ErrSettingNotFound)

	// Absent again, create works
	_, err = Create(ctx, db, "k", models.MustJSON(4))
	require.NoError(t, err)
}
