// Package sqlite stores the session in a SQLite database, for tools that
// already keep their state in one. The database file is shared: the
// storage only touches its own table.
package sqlite

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pcap-tools/pcap-sdk-golang/auth"
)

var _ auth.ISessionStorage = &sqliteSessionStorage{}

type sessionRow struct {
	Name  string `db:"name"`
	Value []byte `db:"value"`
}

const (
	createSessionTableQuery = `CREATE TABLE IF NOT EXISTS pcap_session (
name TEXT NOT NULL,
value BLOB,
PRIMARY KEY (name)
)`
	getSessionValueQuery = `SELECT name, value FROM pcap_session WHERE name = ?`
	putSessionValueQuery = `INSERT INTO pcap_session (name, value) VALUES (:name, :value)
ON CONFLICT (name) DO UPDATE SET value = :value`

	csrfKey    = "csrf"
	cookiesKey = "cookies"
)

type sqliteSessionStorage struct {
	getConnection func() *sqlx.DB
	ensured       bool
}

// NewSessionStorage creates session storage over an existing connection
// factory. The backing table is created on first use.
func NewSessionStorage(getConnection func() *sqlx.DB) auth.ISessionStorage {
	return &sqliteSessionStorage{
		getConnection: getConnection,
	}
}

// OpenSessionStorage opens (creating if needed) a SQLite database file
// and returns session storage over it.
func OpenSessionStorage(filename string) (storage auth.ISessionStorage, err error) {
	var db *sqlx.DB
	if db, err = sqlx.Connect("sqlite3", filename); err != nil {
		return
	}
	storage = NewSessionStorage(func() *sqlx.DB {
		return db
	})
	return
}

func (ss *sqliteSessionStorage) ensureTable() (err error) {
	if ss.ensured {
		return nil
	}
	if _, err = ss.getConnection().Exec(createSessionTableQuery); err == nil {
		ss.ensured = true
	}
	return
}

func (ss *sqliteSessionStorage) get(name string) (value []byte, err error) {
	if err = ss.ensureTable(); err != nil {
		return
	}
	var row sessionRow
	if err = ss.getConnection().Get(&row, getSessionValueQuery, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
		}
		return
	}
	value = row.Value
	return
}

func (ss *sqliteSessionStorage) put(name string, value []byte) (err error) {
	if err = ss.ensureTable(); err != nil {
		return
	}
	_, err = ss.getConnection().NamedExec(putSessionValueQuery, &sessionRow{
		Name:  name,
		Value: value,
	})
	return
}

func (ss *sqliteSessionStorage) LoadCsrf() (token string, err error) {
	var value []byte
	if value, err = ss.get(csrfKey); err == nil {
		token = string(value)
	}
	return
}

func (ss *sqliteSessionStorage) StoreCsrf(token string) error {
	return ss.put(csrfKey, []byte(token))
}

func (ss *sqliteSessionStorage) LoadCookies() ([]byte, error) {
	return ss.get(cookiesKey)
}

func (ss *sqliteSessionStorage) StoreCookies(snapshot []byte) error {
	return ss.put(cookiesKey, snapshot)
}
