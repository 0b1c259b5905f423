package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"transportbooking/internal/domain"
	"transportbooking/internal/repositories"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id_user", "passenger_full_name", "passenger_phone", "passenger_email", "date_of_birth", "password",
	})
}

func newUserService(t *testing.T) (UserService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := UserService{
		Users: repositories.UserRepository{DB: db},
		Now:   func() time.Time { return testClock },
	}
	return svc, mock, func() { db.Close() }
}

func validCreateUserInput() CreateUserInput {
	return CreateUserInput{
		PassengerFullName: "Ivan Petrov",
		PassengerPhone:    "+7 912 345-67-89",
		PassengerEmail:    "ivan@gmail.com",
		DateOfBirth:       "1990-05-20",
		Password:          "secret123",
	}
}

func TestUserCreate(t *testing.T) {
	svc, mock, done := newUserService(t)
	defer done()

	// Uniqueness lookups find nothing, the id scan sees one user.
	mock.ExpectQuery("FROM users").WithArgs("+7 912 345-67-89").WillReturnRows(userRows())
	mock.ExpectQuery("FROM users").WithArgs("ivan@gmail.com").WillReturnRows(userRows())
	mock.ExpectQuery("SELECT id_user FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id_user"}).AddRow("u4"))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := svc.Create(context.Background(), validCreateUserInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.IDUser != "u5" {
		t.Errorf("user id = %q, want u5", user.IDUser)
	}
	if user.Password == "secret123" {
		t.Error("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")) != nil {
		t.Error("stored hash does not match the password")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserCreateRejectsBeforeAnyQuery(t *testing.T) {
	svc, mock, done := newUserService(t)
	defer done()

	cases := []struct {
		name   string
		mutate func(*CreateUserInput)
	}{
		{"missing field", func(in *CreateUserInput) { in.Password = "" }},
		{"bad phone", func(in *CreateUserInput) { in.PassengerPhone = "89123456789" }},
		{"bad email domain", func(in *CreateUserInput) { in.PassengerEmail = "ivan@outlook.com" }},
		{"bad date format", func(in *CreateUserInput) { in.DateOfBirth = "20.05.1990" }},
		{"too young", func(in *CreateUserInput) { in.DateOfBirth = "2015-05-20" }},
		{"future birth date", func(in *CreateUserInput) { in.DateOfBirth = "2030-01-01" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateUserInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			if !domain.IsValidation(err) {
				t.Fatalf("got %v, want validation error", err)
			}
		})
	}

	// None of the rejected inputs may have reached the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}

func TestUserCreateDuplicatePhone(t *testing.T) {
	svc, mock, done := newUserService(t)
	defer done()

	birth := time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM users").WithArgs("+7 912 345-67-89").
		WillReturnRows(userRows().AddRow("u1", "Someone Else", "+7 912 345-67-89", "other@mail.ru", birth, "hash"))

	_, err := svc.Create(context.Background(), validCreateUserInput())
	if !domain.IsConflict(err) {
		t.Fatalf("got %v, want conflict error", err)
	}
	if err.Error() != "user conflict: a user with this phone number already exists" {
		t.Errorf("message = %q", err.Error())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyCredentials(t *testing.T) {
	svc, mock, done := newUserService(t)
	defer done()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	birth := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	row := func() *sqlmock.Rows {
		return userRows().AddRow("u1", "Ivan Petrov", "+7 912 345-67-89", "ivan@gmail.com", birth, string(hash))
	}
	ctx := context.Background()

	mock.ExpectQuery("FROM users").WithArgs("Ivan Petrov", "ivan@gmail.com").WillReturnRows(row())
	user, err := svc.VerifyCredentials(ctx, "Ivan Petrov", "ivan@gmail.com", "secret123")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	if user.IDUser != "u1" {
		t.Errorf("user id = %q, want u1", user.IDUser)
	}

	mock.ExpectQuery("FROM users").WithArgs("Ivan Petrov", "ivan@gmail.com").WillReturnRows(row())
	_, err = svc.VerifyCredentials(ctx, "Ivan Petrov", "ivan@gmail.com", "wrong")
	if !domain.IsValidation(err) || err.Error() != "invalid credentials" {
		t.Fatalf("wrong password: got %v", err)
	}

	mock.ExpectQuery("FROM users").WithArgs("Nobody", "ivan@gmail.com").WillReturnRows(userRows())
	_, err = svc.VerifyCredentials(ctx, "Nobody", "ivan@gmail.com", "secret123")
	if !domain.IsValidation(err) || err.Error() != "invalid credentials" {
		t.Fatalf("unknown user: got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
