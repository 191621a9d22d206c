package model

// Kind identifies the structural shape of a resolved type.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindNull    Kind = "null"
	KindAny     Kind = "any"
	KindMap     Kind = "map"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindUnion   Kind = "union"
	KindAllOf   Kind = "allOf"
)

// Format refines a string type into a richer semantic type. The zero
// value means a plain string.
type Format string

const (
	FormatBase64        Format = "base64"
	FormatBinary        Format = "binary"
	FormatDate          Format = "date"
	FormatTime          Format = "time"
	FormatDateTime      Format = "date-time"
	FormatDuration      Format = "duration"
	FormatDirectoryPath Format = "directory-path"
	FormatEmail         Format = "email"
	FormatFilePath      Format = "file-path"
	FormatIPv4          Format = "ipv4"
	FormatIPv6          Format = "ipv6"
	FormatIPAnyAddress  Format = "ipvanyaddress"
	FormatIPInterface   Format = "ipvanyinterface"
	FormatIPNetwork     Format = "ipvanynetwork"
	FormatJSONString    Format = "json-string"
	FormatMultiHostURI  Format = "multi-host-uri"
	FormatPassword      Format = "password"
	FormatPath          Format = "path"
	FormatURI           Format = "uri"
	FormatUUID          Format = "uuid"
	FormatUUID1         Format = "uuid1"
	FormatUUID3         Format = "uuid3"
	FormatUUID4         Format = "uuid4"
	FormatUUID5         Format = "uuid5"

	// Derived semantic types. These never appear in a schema document;
	// the compiler produces them by narrowing.
	FormatSecretBytes Format = "secret-bytes"
	FormatHTTPURI     Format = "http-uri"
	FormatFileURI     Format = "file-uri"
)

// Type is a resolved type descriptor. Exactly one of Items, Object,
// Union and AllOf is set for the array, object, union and allOf kinds;
// all are nil for primitives.
type Type struct {
	Kind     Kind
	Format   Format
	Nullable bool

	// Items holds the element type of an array. Nil means an untyped
	// array.
	Items *Type

	// Object holds the nested model of an object with properties.
	Object *Model

	Union []*Type
	AllOf []*Type
}

// PlainString reports whether the type is a string that was not
// narrowed by a format.
func (t *Type) PlainString() bool {
	return t.Kind == KindString && t.Format == ""
}

func (t *Type) Numeric() bool {
	return t.Kind == KindInteger || t.Kind == KindNumber
}

// Equal reports structural equality. Descriptors compiled independently
// from the same schema compare equal even though they are distinct
// instances.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}

	if t.Kind != o.Kind || t.Format != o.Format || t.Nullable != o.Nullable {
		return false
	}

	if !t.Items.Equal(o.Items) {
		return false
	}

	if !t.Object.Equal(o.Object) {
		return false
	}

	return typesEqual(t.Union, o.Union) && typesEqual(t.AllOf, o.AllOf)
}

func typesEqual(a []*Type, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

// Constraints carries the value restrictions attached to a field.
// Numeric bounds apply to numeric types, length bounds to plain
// strings, AllowedSchemes to URIs.
type Constraints struct {
	Ge         *float64
	Gt         *float64
	Le         *float64
	Lt         *float64
	MultipleOf *float64

	MinLength *int
	MaxLength *int

	AllowedSchemes []string
}

func (c Constraints) Empty() bool {
	return c.Ge == nil && c.Gt == nil && c.Le == nil && c.Lt == nil &&
		c.MultipleOf == nil && c.MinLength == nil && c.MaxLength == nil &&
		len(c.AllowedSchemes) == 0
}

// Field is one named, typed member of a model.
type Field struct {
	Name        string
	Type        *Type
	Required    bool
	Description string
	Examples    []any
	Constraints Constraints

	// HasDefault is true for optional fields, whose default is the null
	// value. Required fields carry no default.
	HasDefault bool
	Default    any
}

// FieldValidator is an extra validator injected by the caller and run
// against a single field's value after the built-in checks.
type FieldValidator struct {
	Field    string
	Validate func(value any) (any, error)
}

// Extra selects how the validation engine treats keys that are not
// declared as fields.
type Extra string

const (
	ExtraIgnore Extra = "ignore"
	ExtraAllow  Extra = "allow"
	ExtraForbid Extra = "forbid"
)

// Config is the caller-supplied model configuration. The compiler
// passes it through untouched; the validation engine interprets it.
type Config struct {
	Extra Extra
}

// Model is a named record type with ordered fields.
type Model struct {
	Name    string
	Package string
	Fields  []Field

	// Base, Config, Validators and ExtraArgs are caller-supplied
	// pass-through values. The compiler stores them without
	// interpretation.
	Base       *Model
	Config     *Config
	Validators map[string]FieldValidator
	ExtraArgs  map[string]any
}

// Field returns the named field, or nil.
func (m *Model) Field(name string) *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}

	return nil
}

// FieldNames returns the field names in declared order.
func (m *Model) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i := range m.Fields {
		names[i] = m.Fields[i].Name
	}

	return names
}

// Equal reports structural equality of the two models' names and
// fields. Pass-through values are not compared.
func (m *Model) Equal(o *Model) bool {
	if m == nil || o == nil {
		return m == o
	}

	if m.Name != o.Name || len(m.Fields) != len(o.Fields) {
		return false
	}

	for i := range m.Fields {
		if !m.Fields[i].equal(&o.Fields[i]) {
			return false
		}
	}

	return true
}

func (f *Field) equal(o *Field) bool {
	if f.Name != o.Name || f.Required != o.Required || f.HasDefault != o.HasDefault {
		return false
	}

	return f.Type.Equal(o.Type)
}
