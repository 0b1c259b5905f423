package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"transportbooking/internal/domain"
)

var (
	// Phone numbers follow the national format "+7 XXX XXX-XX-XX".
	phonePattern = regexp.MustCompile(`^\+7 \d{3} \d{3}-\d{2}-\d{2}$`)

	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

	allowedEmailDomains = []string{"mail.ru", "inbox.ru", "yandex.ru", "gmail.com"}
)

func IsValidPhoneFormat(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidEmailFormat checks local-part@domain syntax and that the domain is
// one of the supported providers. Domain comparison is case-insensitive.
func IsValidEmailFormat(email string) bool {
	if !emailPattern.MatchString(email) {
		return false
	}
	domainPart := email[strings.LastIndex(email, "@")+1:]
	for _, allowed := range allowedEmailDomains {
		if strings.EqualFold(domainPart, allowed) {
			return true
		}
	}
	return false
}

// ValidateAge enforces the booking-eligibility age rule: the birth date must
// not lie in the future, and the passenger must be between 14 and 120 years
// old. Age is counted in whole years.
func ValidateAge(dateOfBirth, now time.Time) error {
	birth := dateOfBirth.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)

	if birth.After(today) {
		return domain.ValidationError{Field: "dateOfBirth", Msg: "date of birth cannot be later than the current date"}
	}

	age := yearsBetween(dateOfBirth, now)
	if age > 120 {
		return domain.ValidationError{
			Field: "dateOfBirth",
			Msg:   fmt.Sprintf("we doubt you are really %d years old, please enter a correct date of birth", age),
		}
	}
	if age < 14 {
		return domain.ValidationError{
			Field: "dateOfBirth",
			Msg:   "passengers under 14 cannot book tickets on their own, a parent has to book for them",
		}
	}
	return nil
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}
