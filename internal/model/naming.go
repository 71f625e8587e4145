package model

import (
	"reflect"
	"regexp"
	"strings"
)

var camelBoundary = regexp.MustCompile(`([a-z\d])([A-Z])`)

// TableNameOf derives a table name from a type name: an underscore goes between a
// lowercase letter or digit and the following uppercase letter, then everything is
// lowercased. UserProfile -> user_profile.
func TableNameOf(typeName string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(typeName, "${1}_${2}"))
}

// DerivedTableName applies TableNameOf to the dynamic type name of v.
func DerivedTableName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return TableNameOf(t.Name())
}
