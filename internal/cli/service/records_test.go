package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orangepass/internal/cli/model"
	sqliterepo "orangepass/internal/cli/repo/sqlite"
)

func newRecordFixture(t *testing.T) (*sqliterepo.RecordRepositorySQLite, *RecordService) {
	t.Helper()
	repo, err := sqliterepo.Open(filepath.Join(t.TempDir(), "qr.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Migrate())
	return repo, NewRecordService(repo)
}

func TestRecordService_CreateAppendsToEnd(t *testing.T) {
	_, svc := newRecordFixture(t)

	id1, err := svc.Create(CreateInput{UserID: "u1", Code: "VCB", Metadata: "qr1", Type: model.TypeBank})
	require.NoError(t, err)
	id2, err := svc.Create(CreateInput{UserID: "u1", Code: "MOMO", Metadata: "qr2", Type: model.TypeEwallet, MetadataType: model.MetadataBarcode})
	require.NoError(t, err)

	list, err := svc.List("u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id1, list[0].ID)
	assert.Equal(t, 0, list[0].QRIndex)
	assert.Equal(t, id2, list[1].ID)
	assert.Equal(t, 1, list[1].QRIndex)
	// metadata_type по умолчанию qr
	assert.Equal(t, model.MetadataQR, list[0].MetadataType)
	assert.False(t, list[0].IsSynced)
}

func TestRecordService_CreateValidation(t *testing.T) {
	_, svc := newRecordFixture(t)

	_, err := svc.Create(CreateInput{UserID: "u1", Metadata: "", Type: model.TypeBank})
	assert.Error(t, err, "пустой payload")

	_, err = svc.Create(CreateInput{UserID: "u1", Metadata: "x", Type: "restaurant"})
	assert.Error(t, err, "неизвестная категория")

	_, err = svc.Create(CreateInput{UserID: "u1", Metadata: "x", Type: model.TypeBank, MetadataType: "pdf417"})
	assert.Error(t, err, "неизвестный тип payload")
}

func TestRecordService_EditMarksUnsynced(t *testing.T) {
	repo, svc := newRecordFixture(t)

	id, err := svc.Create(CreateInput{UserID: "u1", Code: "VCB", Metadata: "qr1", Type: model.TypeBank})
	require.NoError(t, err)
	require.NoError(t, repo.MarkSyncedBatch([]string{id}))

	before, _ := svc.Get(id)
	// метка updated должна сдвинуться
	svc.now = func() time.Time { return time.Now().Add(time.Second) }

	name := "Le Van C"
	require.NoError(t, svc.Edit(id, EditInput{AccountName: &name}))

	after, _ := svc.Get(id)
	assert.Equal(t, "Le Van C", after.AccountName)
	assert.Equal(t, "qr1", after.Metadata, "непереданные поля не трогаем")
	assert.False(t, after.IsSynced)
	assert.True(t, model.UpdatedAfter(after.Updated, before.Updated))

	assert.Error(t, svc.Edit("nope", EditInput{AccountName: &name}))
}

func TestRecordService_DeleteReindexes(t *testing.T) {
	_, svc := newRecordFixture(t)

	var ids []string
	for _, m := range []string{"qr1", "qr2", "qr3"} {
		id, err := svc.Create(CreateInput{UserID: "u1", Code: "VCB", Metadata: m, Type: model.TypeBank})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// удаляем средний — индексы остаются плотными
	require.NoError(t, svc.Delete(ids[1]))

	list, _ := svc.List("u1")
	require.Len(t, list, 2)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, 0, list[0].QRIndex)
	assert.Equal(t, ids[2], list[1].ID)
	assert.Equal(t, 1, list[1].QRIndex)

	assert.Error(t, svc.Delete(ids[1]), "повторное удаление")
}

func TestRecordService_ReorderByIDs(t *testing.T) {
	_, svc := newRecordFixture(t)

	var ids []string
	for _, m := range []string{"qr1", "qr2", "qr3"} {
		id, err := svc.Create(CreateInput{UserID: "u1", Code: "VCB", Metadata: m, Type: model.TypeBank})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, svc.ReorderByIDs("u1", []string{ids[2], ids[0], ids[1]}))
	list, _ := svc.List("u1")
	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, []string{list[0].ID, list[1].ID, list[2].ID})

	// не перестановка — ошибка
	assert.Error(t, svc.ReorderByIDs("u1", []string{ids[0], ids[1]}))
	assert.Error(t, svc.ReorderByIDs("u1", []string{ids[0], ids[1], "nope"}))
	assert.Error(t, svc.ReorderByIDs("u1", []string{ids[0], ids[1], ids[1]}))
}
