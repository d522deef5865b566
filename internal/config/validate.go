package config

import (
	"fmt"

	"github.com/marcus/dropdown/internal/validate"
)

// menuRules maps each menu property to its composed validator. Rules are
// written as loose lists and composed by validate.AllOf; composition errors
// are programming bugs, so they panic at package init.
var menuRules = []struct {
	prop string
	v    validate.Validator
}{
	{"name", mustAll(validate.Required())},
	{"toggle", mustAll(validate.Required())},
	{"items", mustAll(validate.NonEmptyList(), validate.UniqueStrings())},
	{"prevent", mustAll(validate.List(), validate.SubsetOf("items"))},
}

// preventShape runs while decoding, before prevent is typed as []string.
var preventShape = mustAll(validate.List())

func mustAll(vs ...any) validate.Validator {
	v, err := validate.AllOf(vs)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks every menu and reports all failures at once.
func Validate(cfg *Config) error {
	if len(cfg.Menus) == 0 {
		return ErrNoMenus
	}

	verr := &validate.ValidationError{Component: "config"}
	if !validScheme(cfg.IDScheme) {
		verr.Add(&validate.PropError{
			Component: "config",
			Prop:      "id_scheme",
			Reason:    fmt.Sprintf("unknown scheme %q (want %s or %s)", cfg.IDScheme, IDSchemeRandom, IDSchemeUUID),
		})
	}

	names := make(map[string]bool, len(cfg.Menus))

	for i, m := range cfg.Menus {
		component := m.Name
		if component == "" {
			component = fmt.Sprintf("menus[%d]", i)
		}

		props := validate.Props{
			"name":    m.Name,
			"toggle":  m.Toggle,
			"items":   m.Keys(),
			"prevent": m.Prevent,
		}
		for _, rule := range menuRules {
			if err := rule.v(props, rule.prop, component); err != nil {
				verr.Add(err)
			}
		}

		if m.Name != "" {
			if names[m.Name] {
				verr.Add(&validate.PropError{Component: component, Prop: "name", Reason: "duplicate menu name"})
			}
			names[m.Name] = true
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func validScheme(s string) bool {
	switch s {
	case "", IDSchemeRandom, IDSchemeUUID:
		return true
	}
	return false
}
