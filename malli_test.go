package malli_test

import (
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/viljami/malli"
	"github.com/viljami/malli/model"
)

func compileDoc(t *testing.T, doc string) *malli.Model {
	t.Helper()

	m, err := malli.CompileBytes([]byte(doc))
	assert.NoError(t, err)

	return m
}

func TestPerson(t *testing.T) {
	person := compileDoc(t, `{
		"title": "Person",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"}
		},
		"required": ["name"]
	}`)

	instance, err := malli.Validate(person, map[string]any{"name": "John", "age": 30})
	assert.NoError(t, err)
	assert.Equal(t, "John", instance["name"])
	assert.EqualValues(t, 30, instance["age"])
}

func TestEmployeeWithNestedAddress(t *testing.T) {
	employee := compileDoc(t, `{
		"title": "Employee",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"},
			"address": {
				"type": "object",
				"properties": {
					"street": {"type": "string"},
					"city": {"type": "string"}
				}
			}
		},
		"required": ["name", "address"]
	}`)

	assert.Equal(t, "Address", employee.Field("address").Type.Object.Name)

	instance, err := malli.Validate(employee, map[string]any{
		"name": "Alice",
		"age":  25,
		"address": map[string]any{
			"street": "123 Main St",
			"city":   "New York",
		},
	})
	assert.NoError(t, err)

	address := instance["address"].(map[string]any)
	assert.Equal(t, "New York", address["city"])
}

func TestStudentWithReferencedDefinition(t *testing.T) {
	student := compileDoc(t, `{
		"title": "Student",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"grade": {"type": "integer"},
			"school": {"$ref": "#/$defs/School"}
		},
		"required": ["name", "school"],
		"$defs": {
			"School": {
				"title": "School",
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"address": {"type": "string"}
				},
				"required": ["name"]
			}
		}
	}`)

	assert.Equal(t, "School", student.Field("school").Type.Object.Name)

	instance, err := malli.Validate(student, map[string]any{
		"name":  "Bob",
		"grade": 10,
		"school": map[string]any{
			"name":    "ABC School",
			"address": "456 Elm St",
		},
	})
	assert.NoError(t, err)

	school := instance["school"].(map[string]any)
	assert.Equal(t, "ABC School", school["name"])

	_, err = malli.Validate(student, map[string]any{
		"name":   "Bob",
		"school": map[string]any{"address": "456 Elm St"},
	})
	assert.ErrorContains(t, err, `field "school.name"`)
}

func TestSkuUnion(t *testing.T) {
	sku := compileDoc(t, `{
		"title": "SKU",
		"type": "object",
		"properties": {
			"value": {
				"title": "Value",
				"anyOf": [
					{"type": "string"},
					{"type": "integer"},
					{"type": "boolean"}
				]
			}
		}
	}`)

	for _, v := range []any{"hello", 42, true} {
		_, err := malli.Validate(sku, map[string]any{"value": v})
		assert.NoError(t, err)
	}

	_, err := malli.Validate(sku, map[string]any{"value": 3.14})
	assert.Error(t, err)
}

func TestUserWithFormats(t *testing.T) {
	user := compileDoc(t, `{
		"title": "User",
		"type": "object",
		"properties": {
			"username": {"type": "string"},
			"email": {"type": "string", "format": "email"},
			"password": {"type": "string", "format": "password"}
		},
		"required": ["username", "email", "password"]
	}`)

	instance, err := malli.Validate(user, map[string]any{
		"username": "john_doe",
		"email":    "john@example.com",
		"password": "secret",
	})
	assert.NoError(t, err)

	password := instance["password"].(model.Secret)
	assert.Equal(t, "**********", password.String())
	assert.Equal(t, "secret", password.Reveal())

	_, err = malli.Validate(user, map[string]any{
		"username": "john_doe",
		"email":    "not-an-email",
		"password": "secret",
	})
	assert.ErrorContains(t, err, "invalid email")
}

func TestNumbersArray(t *testing.T) {
	numbers := compileDoc(t, `{
		"title": "Numbers",
		"type": "object",
		"properties": {
			"value": {"type": "array", "items": {"type": "integer"}}
		}
	}`)

	instance, err := malli.Validate(numbers, map[string]any{
		"value": []any{1, 2, 3, 4, 5},
	})
	assert.NoError(t, err)
	assert.Len(t, instance["value"], 5)
}

func TestMatrix(t *testing.T) {
	matrix := compileDoc(t, `{
		"title": "Matrix",
		"type": "object",
		"properties": {
			"value": {
				"type": "array",
				"items": {"type": "array", "items": {"type": "integer"}}
			}
		}
	}`)

	_, err := malli.Validate(matrix, map[string]any{
		"value": []any{
			[]any{1, 2, 3},
			[]any{4, 5, 6},
			[]any{7, 8, 9},
		},
	})
	assert.NoError(t, err)

	_, err = malli.Validate(matrix, map[string]any{
		"value": []any{[]any{1, "two"}},
	})
	assert.Error(t, err)
}

func TestConfigForbidsExtras(t *testing.T) {
	n, err := malli.Parse([]byte(`{
		"title": "User",
		"type": "object",
		"properties": {"username": {"type": "string"}},
		"required": ["username"]
	}`))
	assert.NoError(t, err)

	user, err := malli.CompileWithOptions(n, malli.Options{
		Config: &model.Config{Extra: model.ExtraForbid},
	})
	assert.NoError(t, err)

	_, err = malli.Validate(user, map[string]any{
		"username": "john_doe",
		"debug":    true,
	})
	assert.ErrorContains(t, err, "unexpected field")
}

func TestSeparateRootSchema(t *testing.T) {
	root, err := malli.Parse([]byte(`{
		"$defs": {"Id": {"type": "integer"}}
	}`))
	assert.NoError(t, err)

	node, err := malli.Parse([]byte(`{
		"title": "T",
		"type": "object",
		"properties": {"id": {"$ref": "#/$defs/Id"}},
		"required": ["id"]
	}`))
	assert.NoError(t, err)

	m, err := malli.CompileWithOptions(node, malli.Options{Root: root})
	assert.NoError(t, err)
	assert.Equal(t, model.KindInteger, m.Field("id").Type.Kind)
}
