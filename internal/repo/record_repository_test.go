package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"orangepass/internal/model"
)

// хелпер для создания базовой записи
func mkRecord(id, userID string, idx int, upd time.Time) model.Record {
	return model.Record{
		ID:       id,
		UserID:   userID,
		QRIndex:  idx,
		Code:     "VCB",
		Metadata: "payload-" + id,
		Type:     "bank",
		Created:  upd.UTC(),
		Updated:  upd.UTC(),
	}
}

func seedUser(t *testing.T, users UserRepository, id string) {
	t.Helper()
	_, err := users.CreateUser(context.Background(), &model.User{ID: id, Login: "login-" + id, Password: "hash"})
	assert.NoError(t, err)
}

func TestRecordRepository_CreateGetDelete(t *testing.T) {
	db := newTestDB(t)
	r := NewRecordRepository(db)
	seedUser(t, NewUserRepository(db), "u1")
	ctx := context.Background()

	rec := mkRecord("r1", "u1", 0, time.Now().Add(-time.Minute))
	assert.NoError(t, r.Create(ctx, &rec))

	got, err := r.GetByID(ctx, "r1")
	assert.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	// отсутствующая запись — (nil, nil)
	got, err = r.GetByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)

	// чужую запись удалить нельзя
	rows, err := r.Delete(ctx, "someone-else", "r1")
	assert.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = r.Delete(ctx, "u1", "r1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, _ = r.GetByID(ctx, "r1")
	assert.Nil(t, got)
}

func TestRecordRepository_UpdateScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	r := NewRecordRepository(db)
	seedUser(t, NewUserRepository(db), "u1")
	ctx := context.Background()

	rec := mkRecord("r1", "u1", 0, time.Now().Add(-time.Hour))
	assert.NoError(t, r.Create(ctx, &rec))

	newUpd := time.Now().UTC().Truncate(time.Second)
	rows, err := r.Update(ctx, "u1", "r1", map[string]any{
		"account_name": "Pham Van D",
		"updated":      newUpd,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, _ := r.GetByID(ctx, "r1")
	assert.Equal(t, "Pham Van D", got.AccountName)
	assert.WithinDuration(t, newUpd, got.Updated, time.Second)

	// чужой пользователь — 0 строк
	rows, err = r.Update(ctx, "intruder", "r1", map[string]any{"account_name": "X"})
	assert.NoError(t, err)
	assert.Zero(t, rows)
}

func TestRecordRepository_ListWithFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	r := NewRecordRepository(db)
	users := NewUserRepository(db)
	seedUser(t, users, "u1")
	seedUser(t, users, "u2")
	ctx := context.Background()

	t1 := time.Now().UTC().Add(-3 * time.Hour)
	t2 := time.Now().UTC().Add(-2 * time.Hour)
	t3 := time.Now().UTC().Add(-1 * time.Hour)

	for _, rec := range []model.Record{
		mkRecord("a", "u1", 0, t2),
		mkRecord("b", "u1", 1, t1),
		mkRecord("c", "u1", 2, t3),
		mkRecord("d", "u2", 0, t3),
	} {
		rec := rec
		assert.NoError(t, r.Create(ctx, &rec))
	}

	// выборка по пользователю с сортировкой по updated
	recs, err := r.List(ctx, "user_id = ?", []any{"u1"}, "updated ASC")
	assert.NoError(t, err)
	if assert.Len(t, recs, 3) {
		assert.Equal(t, "b", recs[0].ID)
		assert.Equal(t, "a", recs[1].ID)
		assert.Equal(t, "c", recs[2].ID)
	}

	// watermark-срез: строго новее t2
	recs, err = r.List(ctx, "user_id = ? AND updated > ?", []any{"u1", t2}, "updated ASC")
	assert.NoError(t, err)
	if assert.Len(t, recs, 1) {
		assert.Equal(t, "c", recs[0].ID)
	}
}

func TestRecordRepository_UpdatedMap(t *testing.T) {
	db := newTestDB(t)
	r := NewRecordRepository(db)
	users := NewUserRepository(db)
	seedUser(t, users, "u1")
	seedUser(t, users, "u2")
	ctx := context.Background()

	upd := time.Now().UTC().Add(-time.Minute)
	for _, rec := range []model.Record{
		mkRecord("a", "u1", 0, upd),
		mkRecord("b", "u1", 1, upd),
		mkRecord("other", "u2", 0, upd),
	} {
		rec := rec
		assert.NoError(t, r.Create(ctx, &rec))
	}

	// запрошенные, но отсутствующие id в карту не попадают;
	// чужие записи не видны
	um, err := r.UpdatedMap(ctx, "u1", []string{"a", "b", "missing", "other"})
	assert.NoError(t, err)
	assert.Len(t, um, 2)
	assert.WithinDuration(t, upd, um["a"], time.Second)
	assert.WithinDuration(t, upd, um["b"], time.Second)

	// пустой батч — пустая карта без похода в БД
	um, err = r.UpdatedMap(ctx, "u1", nil)
	assert.NoError(t, err)
	assert.Empty(t, um)
}
