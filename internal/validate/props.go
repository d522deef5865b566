package validate

import (
	"fmt"
	"reflect"
	"strings"
)

// Required fails when the property is missing, nil or a blank string.
func Required() Validator {
	return func(props Props, name, component string) error {
		v, ok := props[name]
		if !ok || v == nil {
			return &PropError{Component: component, Prop: name, Reason: "is required"}
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return &PropError{Component: component, Prop: name, Reason: "must not be blank"}
		}
		return nil
	}
}

// NonEmptyList fails unless the property is a slice with at least one element.
func NonEmptyList() Validator {
	return func(props Props, name, component string) error {
		rv := reflect.ValueOf(props[name])
		if rv.Kind() != reflect.Slice {
			return &PropError{Component: component, Prop: name, Reason: "must be a list"}
		}
		if rv.Len() == 0 {
			return &PropError{Component: component, Prop: name, Reason: "must not be empty"}
		}
		return nil
	}
}

// UniqueStrings fails when the property, a []string, contains duplicates or
// blank entries.
func UniqueStrings() Validator {
	return func(props Props, name, component string) error {
		values, ok := props[name].([]string)
		if !ok {
			return &PropError{Component: component, Prop: name, Reason: "must be a list of strings"}
		}
		seen := make(map[string]bool, len(values))
		for i, v := range values {
			if strings.TrimSpace(v) == "" {
				return &PropError{Component: component, Prop: name, Reason: fmt.Sprintf("entry %d is blank", i)}
			}
			if seen[v] {
				return &PropError{Component: component, Prop: name, Reason: fmt.Sprintf("duplicate value %q", v)}
			}
			seen[v] = true
		}
		return nil
	}
}

// SubsetOf fails when any string in the property is not present in
// props[of].
func SubsetOf(of string) Validator {
	return func(props Props, name, component string) error {
		values, _ := props[name].([]string)
		allowed, _ := props[of].([]string)
		known := make(map[string]bool, len(allowed))
		for _, a := range allowed {
			known[a] = true
		}
		for _, v := range values {
			if !known[v] {
				return &PropError{Component: component, Prop: name, Reason: fmt.Sprintf("unknown %s %q", of, v)}
			}
		}
		return nil
	}
}

// List fails when the property is present but not a list. A missing or nil
// property passes; pair it with Required when the list is mandatory.
func List() Validator {
	return func(props Props, name, component string) error {
		v, ok := props[name]
		if !ok || v == nil {
			return nil
		}
		if reflect.ValueOf(v).Kind() != reflect.Slice {
			return &PropError{Component: component, Prop: name, Reason: fmt.Sprintf("must be an array, got %T", v), Err: ErrNotList}
		}
		return nil
	}
}
