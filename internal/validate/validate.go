package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalid is matched by errors.Is on any Errs value.
var ErrInvalid = errors.New("invalid input")

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

func (e Errs) Is(target error) bool { return target == ErrInvalid }

// Collect drops nil checks and returns nil when every check passed.
func Collect(checks ...*ErrField) error {
	var out Errs
	for _, c := range checks {
		if c != nil {
			out = append(out, *c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

// Length counts characters, not bytes.
func Length(field, value string, min, max int) *ErrField {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return &ErrField{Field: field, Msg: "length must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)}
	}
	return nil
}

func MaxLength(field, value string, max int) *ErrField {
	if utf8.RuneCountInString(value) > max {
		return &ErrField{Field: field, Msg: "length must be at most " + strconv.Itoa(max)}
	}
	return nil
}

func MinInt(field string, v, min int64) *ErrField {
	if v < min {
		return &ErrField{Field: field, Msg: "must be >= " + strconv.FormatInt(min, 10)}
	}
	return nil
}

func IntRange(field string, v, min, max int64) *ErrField {
	if v < min || v > max {
		return &ErrField{Field: field, Msg: "must be between " + strconv.FormatInt(min, 10) + " and " + strconv.FormatInt(max, 10)}
	}
	return nil
}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

func Email(field, value string) *ErrField {
	if !emailRe.MatchString(value) {
		return &ErrField{Field: field, Msg: "must be a valid email address"}
	}
	return nil
}

const (
	PasswordMin     = 8
	PasswordMax     = 16
	PasswordSymbols = "!@#$%^&*"
)

// Password enforces 8-16 characters drawn from letters, digits and
// PasswordSymbols, with at least one uppercase letter and one symbol.
func Password(field, value string) *ErrField {
	bad := &ErrField{Field: field, Msg: "must be 8-16 characters with an uppercase letter and one of " + PasswordSymbols}
	if n := len(value); n < PasswordMin || n > PasswordMax {
		return bad
	}
	var upper, symbol bool
	for _, r := range value {
		switch {
		case r > unicode.MaxASCII:
			return bad
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return bad
		}
	}
	if !upper || !symbol {
		return bad
	}
	return nil
}

func OneOf(field, value string, allowed ...string) *ErrField {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ErrField{Field: field, Msg: "must be one of " + strings.Join(allowed, ", ")}
}
