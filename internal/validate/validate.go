package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"shopforge/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reZip   = regexp.MustCompile(`^[A-Za-z0-9 -]{3,10}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/order/user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Qty parses a quantity, clamping into [1,50] to avoid abuse.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// Password enforces length plus one of each character class.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// Rating accepts whole-star ratings 1..5.
func Rating(n int) bool { return n >= 1 && n <= 5 }

// Address checks the shipping address structurally and returns every problem found.
func Address(a domain.ShippingAddress) []string {
	var problems []string
	req := []struct{ field, val string }{
		{"fullName", a.FullName},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
		{"country", a.Country},
		{"phone", a.Phone},
	}
	for _, f := range req {
		if strings.TrimSpace(f.val) == "" {
			problems = append(problems, fmt.Sprintf("shippingAddress.%s is required", f.field))
		}
	}
	if a.ZipCode != "" && !reZip.MatchString(strings.TrimSpace(a.ZipCode)) {
		problems = append(problems, "shippingAddress.zipCode is invalid")
	}
	if a.Phone != "" && !rePhone.MatchString(strings.TrimSpace(a.Phone)) {
		problems = append(problems, "shippingAddress.phone is invalid")
	}
	return problems
}

func PaymentMethod(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, domain.ValidPaymentMethod(s)
}

func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, domain.ValidCategory(s)
}

func OrderStatus(s string) (domain.OrderStatus, bool) {
	s = strings.TrimSpace(s)
	return domain.OrderStatus(s), domain.ValidOrderStatus(s)
}
