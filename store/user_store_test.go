package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"showcase/api/models"
)

func TestUserStoreCreateUser(t *testing.T) {
	db, mock, done := newMock(t)
	defer done()
	s := NewUserStore(db)

	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("ed@example.com", []byte("hash"), "editor").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "created_at", "updated_at"}).
			AddRow(3, "ed@example.com", "editor", now, now))

	u, err := s.CreateUser(context.Background(), "ed@example.com", []byte("hash"), models.RoleEditor)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if u.ID != 3 || u.Role != models.RoleEditor {
		t.Errorf("CreateUser() = %+v", u)
	}
}

func TestUserStoreCreateUserConflict(t *testing.T) {
	db, mock, done := newMock(t)
	defer done()
	s := NewUserStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := s.CreateUser(context.Background(), "ed@example.com", []byte("hash"), models.RoleViewer)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("CreateUser() error = %v, want ErrConflict", err)
	}
}

func TestUserStoreGetUserByEmail(t *testing.T) {
	db, mock, done := newMock(t)
	defer done()
	s := NewUserStore(db)

	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "email", "hashed_password", "role", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("root@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "root@example.com", []byte("hash"), "superadmin", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	u, err := s.GetUserByEmail(context.Background(), "root@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if u.Role != models.RoleSuperAdmin || string(u.HashedPassword) != "hash" {
		t.Errorf("GetUserByEmail() = %+v", u)
	}

	if _, err := s.GetUserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByEmail() error = %v, want ErrNotFound", err)
	}
}
