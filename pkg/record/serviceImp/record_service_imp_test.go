package serviceImp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evergraze/database"
	"evergraze/entities"
	"evergraze/pkg/apperr"
	"evergraze/pkg/record/repositoryImp"
	"evergraze/pkg/record/service"
)

func newTestService(t *testing.T) service.RecordService {
	t.Helper()
	db, err := database.Bootstrap(filepath.Join(t.TempDir(), "farm.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRecordService(repositoryImp.New(db), 10)
}

func weight(animal, date, kg, notes string) map[string]string {
	return map[string]string{"animal_id": animal, "date": date, "weight": kg, "notes": notes}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	in := map[string]string{
		"animal_id":     "A1",
		"name":          "Daisy",
		"breed":         "Angus",
		"age":           "3",
		"purchase_date": "2023-04-01",
		"source":        "Auction",
	}
	created, err := svc.Create(ctx, entities.KindLivestock, in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(ctx, entities.KindLivestock, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, in, got.Values)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	cases := []struct {
		name   string
		kind   entities.Kind
		fields map[string]string
	}{
		{"missing animal id", entities.KindWeight, weight("", "2024-05-01", "400", "")},
		{"non numeric weight", entities.KindWeight, weight("A1", "2024-05-01", "heavy", "")},
		{"negative weight", entities.KindWeight, weight("A1", "2024-05-01", "-3", "")},
		{"bad date", entities.KindWeight, weight("A1", "01/05/2024", "400", "")},
		{"non numeric age", entities.KindLivestock, map[string]string{"animal_id": "A1", "age": "old"}},
		{"unknown field", entities.KindLivestock, map[string]string{"animal_id": "A1", "colour": "red"}},
		{"id field", entities.KindLivestock, map[string]string{"animal_id": "A1", "id": "4"}},
		{"missing vaccine", entities.KindVaccination, map[string]string{"animal_id": "A1", "date_given": "2024-01-01"}},
		{"unknown kind", entities.Kind(42), map[string]string{"animal_id": "A1"}},
		{"zero kind", entities.Kind(0), map[string]string{"animal_id": "A1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.kind, tc.fields)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrValidation), err.Error())
		})
	}
}

func TestCreateLivestockRejectsDuplicateAnimalID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, entities.KindLivestock, map[string]string{"animal_id": "A1", "name": "Daisy"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, entities.KindLivestock, map[string]string{"animal_id": "A1", "name": "Other"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	// weight rows share animal ids freely
	_, err = svc.Create(ctx, entities.KindWeight, weight("A1", "2024-05-01", "400", ""))
	require.NoError(t, err)
	_, err = svc.Create(ctx, entities.KindWeight, weight("A1", "2024-06-01", "410", ""))
	require.NoError(t, err)
}

func TestListRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, n := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, entities.KindWeight, weight("A1", "2024-05-01", "400", n))
		require.NoError(t, err)
	}

	recent, err := svc.ListRecent(ctx, entities.KindWeight, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "C", recent[0].Get("notes"))
	assert.Equal(t, "B", recent[1].Get("notes"))

	all, err := svc.ListAll(ctx, entities.KindWeight)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Get("notes"))
}

func TestListRecentEmpty(t *testing.T) {
	svc := newTestService(t)

	recent, err := svc.ListRecent(context.Background(), entities.KindVaccination, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.NotNil(t, recent)
}

func TestUpdatePartialKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, entities.KindWeight, weight("A1", "2024-05-01", "400", "before"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, entities.KindWeight, created.ID, map[string]string{"weight": "415.5"})
	require.NoError(t, err)
	assert.Equal(t, "415.5", updated.Get("weight"))
	assert.Equal(t, "before", updated.Get("notes"))
	assert.Equal(t, "2024-05-01", updated.Get("date"))
	assert.Equal(t, "A1", updated.Get("animal_id"))
}

func TestUpdateErrors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Update(ctx, entities.KindWeight, 999, map[string]string{"weight": "1"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	created, err := svc.Create(ctx, entities.KindWeight, weight("A1", "2024-05-01", "400", ""))
	require.NoError(t, err)

	_, err = svc.Update(ctx, entities.KindWeight, created.ID, map[string]string{"weight": ""})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "required field cannot be blanked")

	_, err = svc.Update(ctx, entities.KindWeight, created.ID, map[string]string{})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = svc.Update(ctx, entities.KindWeight, created.ID, map[string]string{"vaccine_name": "x"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestUpdateLivestockAnimalIDConflict(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	a, err := svc.Create(ctx, entities.KindLivestock, map[string]string{"animal_id": "A1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, entities.KindLivestock, map[string]string{"animal_id": "A2"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, entities.KindLivestock, a.ID, map[string]string{"animal_id": "A2"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	// re-saving its own id is fine
	_, err = svc.Update(ctx, entities.KindLivestock, a.ID, map[string]string{"animal_id": "A1", "name": "Daisy"})
	require.NoError(t, err)
}

func TestUpdateMissingLivestockWithTakenAnimalID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, entities.KindLivestock, map[string]string{"animal_id": "A1"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, entities.KindLivestock, 999, map[string]string{"animal_id": "A1"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.False(t, errors.Is(err, apperr.ErrValidation))
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, entities.KindVaccination, map[string]string{
		"animal_id": "A1", "vaccine_name": "Clostridial", "date_given": "2024-03-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entities.KindVaccination, created.ID))
	require.NoError(t, svc.Delete(ctx, entities.KindVaccination, created.ID))
	require.NoError(t, svc.Delete(ctx, entities.KindVaccination, 12345))

	_, err = svc.Get(ctx, entities.KindVaccination, created.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestManageGroupsEveryKind(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, entities.KindLivestock, map[string]string{"animal_id": "A1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, entities.KindWeight, weight("A1", "2024-05-01", "400", ""))
	require.NoError(t, err)

	v, err := svc.Manage(ctx)
	require.NoError(t, err)
	assert.Len(t, v.Livestock, 1)
	assert.Len(t, v.Weights, 1)
	assert.Empty(t, v.Vaccinations)
}
