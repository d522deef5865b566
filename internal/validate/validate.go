// Package validate composes validators for a component's static
// configuration. Problems are reported at setup time, before any event is
// processed.
package validate

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValidations is returned when composing an empty validator list.
	ErrNoValidations = errors.New("no validations provided")
	// ErrNotList is returned when the argument to AllOf is not a list of
	// validators, and wrapped by List failures.
	ErrNotList = errors.New("invalid argument must be an array")
)

// Props is the configuration being validated, keyed by property name.
type Props map[string]any

// Validator checks props[name] for the named component and returns nil when
// the property is acceptable.
type Validator func(props Props, name, component string) error

// All composes validators into one that runs them in order and returns the
// first failure. Validators after a failure are not called.
func All(validators []Validator) (Validator, error) {
	if len(validators) == 0 {
		return nil, ErrNoValidations
	}
	for i, v := range validators {
		if v == nil {
			return nil, fmt.Errorf("validator %d is nil", i)
		}
	}

	chain := make([]Validator, len(validators))
	copy(chain, validators)

	return func(props Props, name, component string) error {
		for _, v := range chain {
			if err := v(props, name, component); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

// AllOf is All for loosely typed input, such as validator lists assembled
// from decoded configuration. Anything other than a list of validators is
// rejected with ErrNotList.
func AllOf(raw any) (Validator, error) {
	switch list := raw.(type) {
	case nil:
		return nil, ErrNoValidations
	case []Validator:
		return All(list)
	case []any:
		validators := make([]Validator, 0, len(list))
		for i, item := range list {
			v, ok := item.(Validator)
			if !ok {
				if fn, isFn := item.(func(Props, string, string) error); isFn {
					v = fn
				} else {
					return nil, fmt.Errorf("%w: element %d is %T", ErrNotList, i, item)
				}
			}
			validators = append(validators, v)
		}
		return All(validators)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotList, raw)
	}
}
