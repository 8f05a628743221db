package recordstore_test

import (
	"context"
	"database/sql"
	"testing"

	"unicube-hr/internal/recordstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGormStore(t *testing.T) (*recordstore.GormStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return recordstore.NewGormStore(gormDB), mock, db
}

func TestGormStore_ReadAll(t *testing.T) {
	store, mock, db := setupGormStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT payload FROM hr_records WHERE collection = \$1 ORDER BY position ASC`).
		WithArgs("leave-requests").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).
			AddRow(`{"id":"b","status":"pending"}`).
			AddRow(`{"id":"a","status":"approved"}`))

	var got []testRecord
	assert.NoError(t, store.ReadAll(context.Background(), "leave-requests", &got))
	assert.Equal(t, []testRecord{
		{ID: "b", Status: "pending"},
		{ID: "a", Status: "approved"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ReadAllEmptyCollection(t *testing.T) {
	store, mock, db := setupGormStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT payload FROM hr_records WHERE collection = \$1 ORDER BY position ASC`).
		WithArgs("goals").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	var got []testRecord
	assert.NoError(t, store.ReadAll(context.Background(), "goals", &got))
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_WriteAll(t *testing.T) {
	store, mock, db := setupGormStore(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM hr_records WHERE collection = \$1`).
		WithArgs("attendance").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO hr_records \(collection, position, payload\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("attendance", 0, `{"id":"1","status":"present"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO hr_records \(collection, position, payload\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("attendance", 1, `{"id":"2","status":"on_leave"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.WriteAll(context.Background(), "attendance", []testRecord{
		{ID: "1", Status: "present"},
		{ID: "2", Status: "on_leave"},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_WriteAllRollsBackOnFailure(t *testing.T) {
	store, mock, db := setupGormStore(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM hr_records WHERE collection = \$1`).
		WithArgs("attendance").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := store.WriteAll(context.Background(), "attendance", []testRecord{{ID: "1"}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
