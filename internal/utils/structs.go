package utils

import (
	"fmt"
	"reflect"
	"slices"
)

var ColumnTag = "db"

// StructTagValues lists the column names of a struct, in field order.
// Fields tagged "-" or without a tag are not columns.
func StructTagValues(input any, omit ...string) []string {
	targetValue := structValue(input)
	targetType := targetValue.Type()

	result := make([]string, 0, targetValue.NumField())
	for i := 0; i < targetValue.NumField(); i++ {
		tag, ok := columnTag(targetType.Field(i))
		if !ok || slices.Contains(omit, tag) {
			continue
		}
		result = append(result, tag)
	}

	return result
}

// StructToMap maps column names to field values for use with squirrel's
// SetMap. Columns listed in omit are left out.
func StructToMap(input any, omit ...string) map[string]any {
	itemValue := structValue(input)
	itemType := itemValue.Type()

	result := make(map[string]any)
	for i := 0; i < itemValue.NumField(); i++ {
		tag, ok := columnTag(itemType.Field(i))
		if !ok || slices.Contains(omit, tag) {
			continue
		}
		result[tag] = itemValue.Field(i).Interface()
	}

	return result
}

func structValue(input any) reflect.Value {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	return v
}

func columnTag(field reflect.StructField) (string, bool) {
	if field.PkgPath != "" {
		return "", false
	}

	tag := field.Tag.Get(ColumnTag)
	if tag == "" || tag == "-" {
		return "", false
	}

	return tag, true
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)
}
