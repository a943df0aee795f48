package utils

import (
	"reflect"
	"strings"
	"time"
)

// NowISO returns the current UTC instant as an ISO-8601 string with
// nanosecond precision. Nanoseconds keep timestamps of back-to-back
// creations distinct enough for lexicographic ordering in sqlite.
func NowISO() string {
	return time.Now().
		UTC().
		Format(time.RFC3339Nano)
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
