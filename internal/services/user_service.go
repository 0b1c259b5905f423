package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"transportbooking/internal/domain"
	"transportbooking/internal/domain/models"
	"transportbooking/internal/repositories"
	"transportbooking/internal/utils"
	"transportbooking/internal/validation"
)

const birthDateLayout = "2006-01-02"

// UserService manages passenger accounts. Passwords are stored as bcrypt
// hashes; the booking core only reads users, never writes them.
type UserService struct {
	Users     repositories.UserRepository
	RequestID string

	Now func() time.Time
}

func (s UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return users, nil
}

func (s UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{
				Resource: "user",
				Msg:      fmt.Sprintf("user with ID %s not found", id),
			}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return user, nil
}

func (s UserService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{
				Resource: "user",
				Msg:      fmt.Sprintf("user with email %s not found", email),
			}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return user, nil
}

type CreateUserInput struct {
	PassengerFullName string
	PassengerPhone    string
	PassengerEmail    string
	DateOfBirth       string
	Password          string
}

func (s UserService) Create(ctx context.Context, in CreateUserInput) (models.User, error) {
	if in.PassengerFullName == "" || in.PassengerPhone == "" || in.PassengerEmail == "" ||
		in.DateOfBirth == "" || in.Password == "" {
		return models.User{}, domain.ValidationError{Msg: "all fields must be filled in"}
	}
	if !validation.IsValidPhoneFormat(in.PassengerPhone) {
		return models.User{}, domain.ValidationError{
			Field: "passengerPhone",
			Msg:   "invalid phone format, use: +7 XXX XXX-XX-XX",
		}
	}
	if !validation.IsValidEmailFormat(in.PassengerEmail) {
		return models.User{}, domain.ValidationError{
			Field: "passengerEmail",
			Msg:   "invalid email format, use: name@domain (mail.ru, inbox.ru, yandex.ru, gmail.com)",
		}
	}

	birthDate, err := time.ParseInLocation(birthDateLayout, in.DateOfBirth, time.Local)
	if err != nil {
		return models.User{}, domain.ValidationError{Field: "dateOfBirth", Msg: "invalid date format, use 'yyyy-MM-dd'"}
	}
	if err := validation.ValidateAge(birthDate, s.now()); err != nil {
		return models.User{}, err
	}

	if _, err := s.Users.FindByPhone(ctx, in.PassengerPhone); err == nil {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "a user with this phone number already exists"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.InternalError{Err: err}
	}
	if _, err := s.Users.FindByEmail(ctx, in.PassengerEmail); err == nil {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "a user with this email already exists"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.InternalError{Err: err}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	id, err := s.Users.NextID(ctx)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	user := models.User{
		IDUser:            id,
		PassengerFullName: in.PassengerFullName,
		PassengerPhone:    in.PassengerPhone,
		PassengerEmail:    in.PassengerEmail,
		DateOfBirth:       birthDate,
		Password:          string(hashed),
	}
	if err := s.Users.Insert(ctx, user); err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "user", "create", fmt.Sprintf("user=%s", id))
	return user, nil
}

type UpdateUserInput struct {
	PassengerFullName string
	PassengerPhone    string
	PassengerEmail    string
	DateOfBirth       string
	Password          string
}

// Update applies only the non-empty fields, re-validating each.
func (s UserService) Update(ctx context.Context, id string, in UpdateUserInput) (models.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{
				Resource: "user",
				Msg:      fmt.Sprintf("user with ID %s not found", id),
			}
		}
		return models.User{}, domain.InternalError{Err: err}
	}

	if in.PassengerFullName != "" {
		user.PassengerFullName = in.PassengerFullName
	}
	if in.PassengerPhone != "" {
		if !validation.IsValidPhoneFormat(in.PassengerPhone) {
			return models.User{}, domain.ValidationError{
				Field: "passengerPhone",
				Msg:   "invalid phone format, use: +7 XXX XXX-XX-XX",
			}
		}
		user.PassengerPhone = in.PassengerPhone
	}
	if in.PassengerEmail != "" {
		if !validation.IsValidEmailFormat(in.PassengerEmail) {
			return models.User{}, domain.ValidationError{
				Field: "passengerEmail",
				Msg:   "invalid email format, use: name@domain (mail.ru, inbox.ru, yandex.ru, gmail.com)",
			}
		}
		user.PassengerEmail = in.PassengerEmail
	}
	if in.DateOfBirth != "" {
		birthDate, err := time.ParseInLocation(birthDateLayout, in.DateOfBirth, time.Local)
		if err != nil {
			return models.User{}, domain.ValidationError{Field: "dateOfBirth", Msg: "invalid date format, use 'yyyy-MM-dd'"}
		}
		if err := validation.ValidateAge(birthDate, s.now()); err != nil {
			return models.User{}, err
		}
		user.DateOfBirth = birthDate
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, domain.InternalError{Err: err}
		}
		user.Password = string(hashed)
	}

	if err := s.Users.Update(ctx, user); err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "user", "update", fmt.Sprintf("user=%s", id))
	return user, nil
}

func (s UserService) Delete(ctx context.Context, id string) error {
	deleted, err := s.Users.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !deleted {
		return domain.NotFoundError{
			Resource: "user",
			Msg:      fmt.Sprintf("user with ID %s not found", id),
		}
	}
	utils.LogEvent(s.RequestID, "user", "delete", fmt.Sprintf("user=%s", id))
	return nil
}

// VerifyCredentials authenticates a passenger by full name, email and
// password for token issuance.
func (s UserService) VerifyCredentials(ctx context.Context, fullName, email, password string) (models.User, error) {
	user, err := s.Users.FindByFullNameAndEmail(ctx, fullName, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.ValidationError{Msg: "invalid credentials"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, domain.ValidationError{Msg: "invalid credentials"}
	}
	return user, nil
}
