package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSQL(t *testing.T, expr string) (string, []any) {
	t.Helper()
	e, err := Parse(expr)
	require.NoError(t, err)
	sql, args, err := e.SQL()
	require.NoError(t, err)
	return sql, args
}

func TestParse_SingleComparison(t *testing.T) {
	sql, args := mustSQL(t, "user_id = 'u1'")
	assert.Equal(t, "user_id = ?", sql)
	assert.Equal(t, []any{"u1"}, args)

	sql, args = mustSQL(t, `id != "r3"`)
	assert.Equal(t, "id <> ?", sql)
	assert.Equal(t, []any{"r3"}, args)
}

func TestParse_UpdatedComparedAsTime(t *testing.T) {
	sql, args := mustSQL(t, "updated > '2026-03-01T12:00:00.000000000Z'")
	assert.Equal(t, "updated > ?", sql)
	require.Len(t, args, 1)
	ts, ok := args[0].(time.Time)
	require.True(t, ok, "updated value must be bound as time.Time")
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), ts.UTC())

	// значение updated не разбирается как время — ошибка компиляции
	e, err := Parse("updated > 'yesterday'")
	require.NoError(t, err)
	_, _, err = e.SQL()
	assert.Error(t, err)
}

func TestParse_AndOrPrecedence(t *testing.T) {
	// && связывает сильнее ||
	sql, args := mustSQL(t, "user_id = 'u' && id = 'a' || id = 'b'")
	assert.Equal(t, "((user_id = ? AND id = ?) OR id = ?)", sql)
	assert.Equal(t, []any{"u", "a", "b"}, args)

	// скобки меняют группировку
	sql, args = mustSQL(t, "user_id = 'u' && (id = 'a' || id = 'b')")
	assert.Equal(t, "(user_id = ? AND (id = ? OR id = ?))", sql)
	assert.Equal(t, []any{"u", "a", "b"}, args)
}

func TestParse_SyncFilterShape(t *testing.T) {
	// форма, которую строит клиент при pull
	sql, args := mustSQL(t,
		"user_id = 'u1' && updated > '2026-03-01T12:00:00.000000000Z' && id != 'dead1' && id != 'dead2'")
	assert.Equal(t, "(user_id = ? AND updated > ? AND id <> ? AND id <> ?)", sql)
	assert.Len(t, args, 4)
}

func TestParse_Errors(t *testing.T) {
	for _, expr := range []string{
		"",
		"user_id",
		"user_id =",
		"user_id = u1",       // значение без кавычек
		"user_id = 'u1",      // незакрытая кавычка
		"user_id = 'a' &&",   // обрыв после связки
		"(user_id = 'a'",     // незакрытая скобка
		"user_id = 'a' & id = 'b'",
		"user_id ~ 'a'",
		"user_id = 'a' extra",
	} {
		_, err := Parse(expr)
		assert.Error(t, err, "expr %q", expr)
	}

	// неизвестное поле проходит парсер, но отбрасывается при компиляции
	e, err := Parse("password = 'x'")
	require.NoError(t, err)
	_, _, err = e.SQL()
	assert.Error(t, err)
}

func TestParseSort(t *testing.T) {
	got, err := ParseSort("updated")
	require.NoError(t, err)
	assert.Equal(t, "updated ASC", got)

	got, err = ParseSort("-created")
	require.NoError(t, err)
	assert.Equal(t, "created DESC", got)

	got, err = ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = ParseSort("password")
	assert.Error(t, err)
	_, err = ParseSort("updated; DROP TABLE qrcodes")
	assert.Error(t, err)
}
