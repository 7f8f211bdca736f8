package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server/store"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestMembershipsFindReturnsNilWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewMembershipsStore(db)

	mock.ExpectQuery(`SELECT \* FROM "users_projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "project_id"}))

	m, err := s.Find(uuid.New(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipsFindReturnsRow(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewMembershipsStore(db)

	id := uuid.New()
	userID := uuid.New()
	projectID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users_projects"`).
		WithArgs(userID, projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "project_id"}).
			AddRow(id.String(), userID.String(), projectID.String()))

	m, err := s.Find(userID, projectID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, id, m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipsCreateMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewMembershipsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users_projects"`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	mock.ExpectRollback()

	err := s.Create(&model.UsersProjects{UserID: uuid.New(), ProjectID: uuid.New()})
	assert.ErrorIs(t, err, store.ErrDuplicateMembership)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipsCreateWrapsOtherErrors(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewMembershipsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users_projects"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := s.Create(&model.UsersProjects{UserID: uuid.New(), ProjectID: uuid.New()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrDuplicateMembership)
	assert.NoError(t, mock.ExpectationsWereMet())
}
