package validators

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var hasSpaces = regexp.MustCompile(`\s+`)

// NoWhiteSpaces returns false if the string contains any whitespace (rejecting the user input).
func NoWhiteSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	str := field.String()
	return !hasSpaces.MatchString(str)
}

// NoDupes rejects string slices containing the same value twice.
func NoDupes(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}

	seen := make(map[string]struct{}, field.Len())
	for i := 0; i < field.Len(); i++ {
		el := field.Index(i)
		if el.Kind() != reflect.String {
			return false
		}

		str := el.String()
		if _, ok := seen[str]; ok {
			return false
		}
		seen[str] = struct{}{}
	}
	return true
}
