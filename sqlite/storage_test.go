package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"gotest.tools/assert"
)

func testStorageDb(t *testing.T) *sqlx.DB {
	db, err := sqlx.Connect("sqlite3", filepath.Join(t.TempDir(), "session.db"))
	assert.NilError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestSqliteStorageEmpty(t *testing.T) {
	db := testStorageDb(t)
	storage := NewSessionStorage(func() *sqlx.DB { return db })

	token, err := storage.LoadCsrf()
	assert.NilError(t, err)
	assert.Equal(t, token, "")

	snapshot, err := storage.LoadCookies()
	assert.NilError(t, err)
	assert.Equal(t, len(snapshot), 0)
}

func TestSqliteStorageRoundTrip(t *testing.T) {
	db := testStorageDb(t)
	storage := NewSessionStorage(func() *sqlx.DB { return db })

	assert.NilError(t, storage.StoreCsrf("abc"))
	assert.NilError(t, storage.StoreCsrf("def"))
	assert.NilError(t, storage.StoreCookies([]byte(`[{"name":"a"}]`)))

	token, err := storage.LoadCsrf()
	assert.NilError(t, err)
	assert.Equal(t, token, "def")

	snapshot, err := storage.LoadCookies()
	assert.NilError(t, err)
	assert.Equal(t, string(snapshot), `[{"name":"a"}]`)
}

func TestSqliteStorageSurvivesReopen(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "session.db")

	first, err := OpenSessionStorage(filename)
	assert.NilError(t, err)
	assert.NilError(t, first.StoreCsrf("abc"))

	second, err := OpenSessionStorage(filename)
	assert.NilError(t, err)
	token, err := second.LoadCsrf()
	assert.NilError(t, err)
	assert.Equal(t, token, "abc")
}
