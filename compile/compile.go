// Package compile turns JSON Schema documents into model descriptors.
//
// The compiler is a pure tree transform: it resolves `$ref` pointers
// against the root document, flattens anyOf/oneOf into unions, keeps
// allOf intersections as-is, and recurses into nested object schemas.
// It performs no validation itself; the resulting descriptors are
// consumed by the validate package.
package compile

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/viljami/malli/internal/ptr"
	"github.com/viljami/malli/model"
	"github.com/viljami/malli/schema"
)

// DefaultModelName is used when an object schema carries no title.
const DefaultModelName = "DynamicModel"

const defsPrefix = "#/$defs/"

// Options are the caller-supplied overrides passed through to the
// compiled model without interpretation.
type Options struct {
	Base       *model.Model
	Config     *model.Config
	Package    string
	Validators map[string]model.FieldValidator
	ExtraArgs  map[string]any
}

// Build compiles an object schema into a named model. Every property is
// compiled in declared order; `required` membership decides the
// required/optional split. root is the document `$ref` pointers resolve
// against and may be objectSchema itself.
//
// Identical `$ref` targets are recompiled independently each time they
// are encountered; compare the results with Model.Equal. Schemas whose
// `$defs` reference themselves recurse without bound, so bound schema
// depth before compiling untrusted documents.
func Build(objectSchema *schema.Node, root *schema.Node, opts Options) (*model.Model, error) {
	if root == nil {
		root = objectSchema
	}

	m := &model.Model{
		Name:       DefaultModelName,
		Package:    opts.Package,
		Base:       opts.Base,
		Config:     opts.Config,
		Validators: opts.Validators,
		ExtraArgs:  opts.ExtraArgs,
	}

	if title, ok := objectSchema.String("title"); ok {
		m.Name = title
	}

	required := objectSchema.Strings("required")

	if props := objectSchema.Node("properties"); props != nil {
		for _, name := range props.Keys() {
			prop := props.Node(name)
			if prop == nil {
				return nil, fmt.Errorf(`property "%s" of "%s" is not a mapping`, name, m.Name)
			}

			f, err := Field(name, prop, required, root)
			if err != nil {
				return nil, err
			}

			m.Fields = append(m.Fields, *f)
		}
	}

	return m, nil
}

// Resolve returns the type descriptor for a schema node. Precedence:
// $ref, anyOf/oneOf, allOf, then dispatch on `type`. nameHint names
// nested object schemas that carry no title of their own.
func Resolve(node *schema.Node, root *schema.Node, nameHint string) (*model.Type, error) {
	if ref, ok := node.String("$ref"); ok {
		// A ref replaces the node entirely; sibling keys are ignored.
		resolved, err := resolveRef(ref, root)
		if err != nil {
			return nil, err
		}

		return Resolve(resolved, root, nameHint)
	}

	if node.Has("anyOf") || node.Has("oneOf") {
		alts := append(node.Nodes("anyOf"), node.Nodes("oneOf")...)
		if len(alts) > 0 {
			union := make([]*model.Type, 0, len(alts))

			for _, alt := range alts {
				t, err := Resolve(alt, root, "")
				if err != nil {
					return nil, err
				}

				union = append(union, t)
			}

			return &model.Type{Kind: model.KindUnion, Union: union}, nil
		}
	}

	if members := node.Nodes("allOf"); len(members) > 0 {
		types := make([]*model.Type, 0, len(members))

		for _, member := range members {
			t, err := Resolve(member, root, "")
			if err != nil {
				return nil, err
			}

			types = append(types, t)
		}

		if len(types) == 1 {
			return types[0], nil
		}

		// Intersections are kept as a member list. Merging object
		// property sets is not attempted.
		return &model.Type{Kind: model.KindAllOf, AllOf: types}, nil
	}

	typeValue, ok := node.Get("type")
	if !ok {
		return &model.Type{Kind: model.KindAny}, nil
	}

	typeName, ok := typeValue.(string)
	if !ok {
		return nil, &UnsupportedTypeError{Type: fmt.Sprintf("%v", typeValue), Node: node}
	}

	switch typeName {
	case "string":
		return &model.Type{Kind: model.KindString}, nil

	case "integer":
		return &model.Type{Kind: model.KindInteger}, nil

	case "number":
		return &model.Type{Kind: model.KindNumber}, nil

	case "boolean":
		return &model.Type{Kind: model.KindBoolean}, nil

	case "null":
		return &model.Type{Kind: model.KindNull}, nil

	case "array":
		if items := node.Node("items"); items != nil && items.Len() > 0 {
			itemType, err := Resolve(items, root, nameHint)
			if err != nil {
				return nil, err
			}

			return &model.Type{Kind: model.KindArray, Items: itemType}, nil
		}

		return &model.Type{Kind: model.KindArray}, nil

	case "object":
		if props := node.Node("properties"); props != nil && props.Len() > 0 {
			synthetic := node.Clone()
			if title, ok := synthetic.String("title"); !ok || title == "" {
				synthetic.Set("title", nameHint)
			}

			nested, err := Build(synthetic, root, Options{})
			if err != nil {
				return nil, err
			}

			return &model.Type{Kind: model.KindObject, Object: nested}, nil
		}

		return &model.Type{Kind: model.KindMap}, nil
	}

	return nil, &UnsupportedTypeError{Type: typeName, Node: node}
}

func resolveRef(ref string, root *schema.Node) (*schema.Node, error) {
	segments := strings.Split(ref, "/")
	start := 1

	var current any = root

	if strings.HasPrefix(ref, defsPrefix) {
		defs, ok := root.Get("$defs")
		if !ok {
			return nil, &ReferenceError{Ref: ref, Segment: "$defs"}
		}

		current = defs
		start = 2
	}

	for _, segment := range segments[start:] {
		node, ok := current.(*schema.Node)
		if !ok {
			return nil, &ReferenceError{Ref: ref, Segment: segment}
		}

		v, ok := node.Get(segment)
		if !ok {
			return nil, &ReferenceError{Ref: ref, Segment: segment}
		}

		current = v
	}

	resolved, ok := current.(*schema.Node)
	if !ok {
		return nil, &ReferenceError{Ref: ref}
	}

	return resolved, nil
}

// Field compiles one named property into a field descriptor.
func Field(name string, prop *schema.Node, required []string, root *schema.Node) (*model.Field, error) {
	f := &model.Field{
		Name:     name,
		Required: slices.Contains(required, name),
	}

	t, err := Resolve(prop, root, titleCase(name))
	if err != nil {
		return nil, err
	}

	if description, ok := prop.String("description"); ok {
		f.Description = description
	}

	if examples, ok := prop.Get("examples"); ok {
		if list, ok := examples.([]any); ok {
			f.Examples = list
		}
	}

	if !f.Required {
		// Optional fields default to null and admit null.
		f.HasDefault = true
		f.Default = nil
	}

	// Numeric bounds attach to the base type before any format
	// narrowing.
	if t.Numeric() {
		f.Constraints.Ge = floatValue(prop, "minimum")
		f.Constraints.Gt = floatValue(prop, "exclusiveMinimum")
		f.Constraints.Le = floatValue(prop, "maximum")
		f.Constraints.Lt = floatValue(prop, "exclusiveMaximum")
		f.Constraints.MultipleOf = floatValue(prop, "multipleOf")
	}

	if t.Kind == model.KindString {
		applyFormat(f, t, prop)
	}

	if t.PlainString() {
		f.Constraints.MinLength = intValue(prop, "minLength")
		f.Constraints.MaxLength = intValue(prop, "maxLength")
	}

	if !f.Required {
		t.Nullable = true
	}

	f.Type = t

	return f, nil
}

// formats maps the schema `format` keyword to the semantic type it
// selects. Unknown formats are ignored.
var formats = map[string]model.Format{
	"base64":          model.FormatBase64,
	"binary":          model.FormatBinary,
	"date":            model.FormatDate,
	"time":            model.FormatTime,
	"date-time":       model.FormatDateTime,
	"duration":        model.FormatDuration,
	"directory-path":  model.FormatDirectoryPath,
	"email":           model.FormatEmail,
	"file-path":       model.FormatFilePath,
	"ipv4":            model.FormatIPv4,
	"ipv6":            model.FormatIPv6,
	"ipvanyaddress":   model.FormatIPAnyAddress,
	"ipvanyinterface": model.FormatIPInterface,
	"ipvanynetwork":   model.FormatIPNetwork,
	"json-string":     model.FormatJSONString,
	"multi-host-uri":  model.FormatMultiHostURI,
	"password":        model.FormatPassword,
	"path":            model.FormatPath,
	"uri":             model.FormatURI,
	"uuid":            model.FormatUUID,
	"uuid1":           model.FormatUUID1,
	"uuid3":           model.FormatUUID3,
	"uuid4":           model.FormatUUID4,
	"uuid5":           model.FormatUUID5,
}

func applyFormat(f *model.Field, t *model.Type, prop *schema.Node) {
	name, ok := prop.String("format")
	if !ok {
		return
	}

	format, ok := formats[name]
	if !ok {
		return
	}

	switch format {
	case model.FormatPassword:
		if prop.Bool("writeOnly") {
			format = model.FormatSecretBytes
		}

	case model.FormatURI:
		schemes := prop.Strings("scheme")

		if len(schemes) == 1 && schemes[0] == "http" {
			format = model.FormatHTTPURI
		} else if len(schemes) == 1 && schemes[0] == "file" {
			format = model.FormatFileURI
		} else if len(schemes) > 0 {
			f.Constraints.AllowedSchemes = schemes
		}
	}

	t.Format = format
}

func floatValue(node *schema.Node, key string) *float64 {
	v, ok := node.Get(key)
	if !ok {
		return nil
	}

	switch v := v.(type) {
	case int:
		return ptr.V(float64(v))
	case int64:
		return ptr.V(float64(v))
	case float64:
		return ptr.V(v)
	}

	return nil
}

func intValue(node *schema.Node, key string) *int {
	v, ok := node.Get(key)
	if !ok {
		return nil
	}

	switch v := v.(type) {
	case int:
		return ptr.V(v)
	case int64:
		return ptr.V(int(v))
	case float64:
		return ptr.V(int(v))
	}

	return nil
}

// titleCase uppercases the first letter of every word and lowercases
// the rest, so a property named "home_address" hints a nested model
// name of "Home_Address" and "homeAddress" hints "Homeaddress".
func titleCase(s string) string {
	out := []rune(s)
	prevLetter := false

	for i, r := range out {
		if unicode.IsLetter(r) {
			if prevLetter {
				out[i] = unicode.ToLower(r)
			} else {
				out[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}

	return string(out)
}
