// Package validate is the runtime engine for compiled models. Given a
// model descriptor and a decoded data map it checks required fields,
// applies defaults, coerces values to their semantic types and enforces
// the declared constraints.
package validate

import (
	"math"
	"sort"
	"strconv"

	"github.com/viljami/malli/internal/maps"
	"github.com/viljami/malli/model"
)

// Validate checks data against m and returns the validated instance.
// Values are coerced to their semantic types: a "date-time" string
// becomes a time.Time, a "uuid" string a uuid.UUID and so on. Optional
// fields missing from data appear in the instance with their null
// default.
func Validate(m *model.Model, data map[string]any) (map[string]any, error) {
	return validateModel(m, data, nil)
}

func validateModel(m *model.Model, data map[string]any, path []string) (map[string]any, error) {
	out := make(map[string]any)
	declared := make(map[string]bool)

	if m.Base != nil {
		if err := validateFields(m.Base.Fields, data, out, declared, path); err != nil {
			return nil, err
		}
	}

	if err := validateFields(m.Fields, data, out, declared, path); err != nil {
		return nil, err
	}

	extra := model.ExtraIgnore
	if m.Config != nil && m.Config.Extra != "" {
		extra = m.Config.Extra
	}

	if extra != model.ExtraIgnore {
		for k, v := range data {
			if declared[k] {
				continue
			}

			if extra == model.ExtraForbid {
				return nil, errorf(append(path, k), `unexpected field`)
			}

			out[k] = v
		}
	}

	if err := runFieldValidators(m, out, path); err != nil {
		return nil, err
	}

	return out, nil
}

func validateFields(
	fields []model.Field,
	data map[string]any,
	out map[string]any,
	declared map[string]bool,
	path []string,
) error {
	for i := range fields {
		f := &fields[i]
		declared[f.Name] = true

		v, ok := data[f.Name]
		if !ok {
			if f.Required {
				return errorf(append(path, f.Name), `missing required value`)
			}

			if f.HasDefault {
				out[f.Name] = f.Default
			}

			continue
		}

		coerced, err := validateValue(f.Type, &f.Constraints, v, append(path, f.Name))
		if err != nil {
			return err
		}

		out[f.Name] = coerced
	}

	return nil
}

func runFieldValidators(m *model.Model, out map[string]any, path []string) error {
	if len(m.Validators) == 0 {
		return nil
	}

	names := maps.Keys(m.Validators)
	sort.Strings(names)

	for _, name := range names {
		fv := m.Validators[name]

		v, ok := out[fv.Field]
		if !ok {
			continue
		}

		coerced, err := fv.Validate(v)
		if err != nil {
			return errorf(append(path, fv.Field), `%s`, err)
		}

		out[fv.Field] = coerced
	}

	return nil
}

func validateValue(t *model.Type, c *model.Constraints, v any, path []string) (any, error) {
	if v == nil {
		if t.Nullable || t.Kind == model.KindNull {
			return nil, nil
		}

		return nil, errorf(path, `value must not be null`)
	}

	switch t.Kind {
	case model.KindString:
		if t.Format != "" {
			return validateFormat(t.Format, c, v, path)
		}

		s, ok := v.(string)
		if !ok {
			return nil, errorf(path, `expected a string, got %T`, v)
		}

		if c != nil {
			if c.MinLength != nil && len(s) < *c.MinLength {
				return nil, errorf(path, `length %d is below the minimum length %d`, len(s), *c.MinLength)
			}
			if c.MaxLength != nil && len(s) > *c.MaxLength {
				return nil, errorf(path, `length %d exceeds the maximum length %d`, len(s), *c.MaxLength)
			}
		}

		return s, nil

	case model.KindInteger:
		i, ok := intValue(v)
		if !ok {
			return nil, errorf(path, `expected an integer, got %v`, v)
		}

		if err := checkBounds(c, float64(i), path); err != nil {
			return nil, err
		}

		return i, nil

	case model.KindNumber:
		f, ok := floatValue(v)
		if !ok {
			return nil, errorf(path, `expected a number, got %T`, v)
		}

		if err := checkBounds(c, f, path); err != nil {
			return nil, err
		}

		return f, nil

	case model.KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, errorf(path, `expected a boolean, got %T`, v)
		}

		return b, nil

	case model.KindNull:
		// Non-nil values were handled above.
		return nil, errorf(path, `expected null, got %T`, v)

	case model.KindAny:
		return v, nil

	case model.KindMap:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errorf(path, `expected an object, got %T`, v)
		}

		return m, nil

	case model.KindObject:
		data, ok := v.(map[string]any)
		if !ok {
			return nil, errorf(path, `expected an object, got %T`, v)
		}

		return validateModel(t.Object, data, path)

	case model.KindArray:
		list, ok := v.([]any)
		if !ok {
			return nil, errorf(path, `expected an array, got %T`, v)
		}

		if t.Items == nil {
			return list, nil
		}

		out := make([]any, len(list))
		for i := range list {
			item, err := validateValue(t.Items, nil, list[i], append(path, indexSegment(i)))
			if err != nil {
				return nil, err
			}

			out[i] = item
		}

		return out, nil

	case model.KindUnion:
		for _, alt := range t.Union {
			if coerced, err := validateValue(alt, c, v, path); err == nil {
				return coerced, nil
			}
		}

		return nil, errorf(path, `value %v matches none of the %d union members`, v, len(t.Union))

	case model.KindAllOf:
		var first any
		for i, member := range t.AllOf {
			coerced, err := validateValue(member, c, v, path)
			if err != nil {
				return nil, err
			}

			if i == 0 {
				first = coerced
			}
		}

		return first, nil
	}

	return nil, errorf(path, `unknown type kind "%s"`, t.Kind)
}

func checkBounds(c *model.Constraints, f float64, path []string) error {
	if c == nil {
		return nil
	}

	if c.Ge != nil && f < *c.Ge {
		return errorf(path, `value %v is below the minimum %v`, f, *c.Ge)
	}
	if c.Gt != nil && f <= *c.Gt {
		return errorf(path, `value %v is not above the exclusive minimum %v`, f, *c.Gt)
	}
	if c.Le != nil && f > *c.Le {
		return errorf(path, `value %v exceeds the maximum %v`, f, *c.Le)
	}
	if c.Lt != nil && f >= *c.Lt {
		return errorf(path, `value %v is not below the exclusive maximum %v`, f, *c.Lt)
	}
	if c.MultipleOf != nil && math.Mod(f, *c.MultipleOf) != 0 {
		return errorf(path, `value %v is not a multiple of %v`, f, *c.MultipleOf)
	}

	return nil
}

func intValue(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		// JSON numbers decode as float64. Integral values pass, 3.14
		// does not.
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int64(v), true
		}
	}

	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}

	return 0, false
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
