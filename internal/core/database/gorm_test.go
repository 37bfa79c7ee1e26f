package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "driver dsn untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/cafes?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/cafes?parseTime=true",
		},
		{
			name: "jdbc url with overrides",
			in:   "jdbc:mysql://db:3306/cafes?useSSL=false&serverTimezone=UTC",
			user: "app", pass: "secret",
			want: "app:secret@tcp(db:3306)/cafes?charset=utf8mb4&loc=UTC&parseTime=true&tls=false",
		},
		{
			name: "credentials in query",
			in:   "mysql://db/cafes?user=u&password=p&characterEncoding=latin1",
			want: "u:p@tcp(db)/cafes?charset=latin1&parseTime=true",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "cafes-banff.db?_pragma=foreign_keys(1)", sqliteDSN(""))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)", sqliteDSN("a.db?_pragma=foreign_keys(1)"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGorm_SQLiteMigrate(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: "file:migrate_test?mode=memory&cache=shared", MaxOpenConns: 1, LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"cafes", "users", "reviews"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
