// Package malli compiles JSON Schema documents into runtime model
// definitions with named, typed fields, nested models, constraints and
// required/optional semantics. The compiled models are validated
// against data with Validate.
//
//	doc, _ := malli.Parse([]byte(`{
//	    "title": "Person",
//	    "type": "object",
//	    "properties": {
//	        "name": {"type": "string"},
//	        "age": {"type": "integer"}
//	    },
//	    "required": ["name"]
//	}`))
//
//	person, _ := malli.Compile(doc)
//	instance, err := malli.Validate(person, map[string]any{
//	    "name": "John",
//	    "age":  30,
//	})
package malli

import (
	"github.com/viljami/malli/compile"
	"github.com/viljami/malli/model"
	"github.com/viljami/malli/schema"
	"github.com/viljami/malli/validate"
)

type (
	Node        = schema.Node
	Model       = model.Model
	Field       = model.Field
	Type        = model.Type
	Config      = model.Config
	Constraints = model.Constraints
)

// Options are caller-supplied overrides for a compiled model. They are
// stored on the model without interpretation by the compiler; the
// validation engine consumes them.
type Options struct {
	// Root is the document `$ref` pointers resolve against. Defaults to
	// the compiled schema itself.
	Root *schema.Node

	// Base is a model whose fields the compiled model extends.
	Base *model.Model

	// Config adjusts how instances are validated, e.g. whether
	// undeclared fields are forbidden.
	Config *model.Config

	// Package names the Go package generated code for this model
	// belongs to.
	Package string

	// Validators are extra per-field validators run after the built-in
	// checks, keyed by a caller-chosen name.
	Validators map[string]model.FieldValidator

	// ExtraArgs are opaque construction arguments carried on the model.
	ExtraArgs map[string]any
}

// Parse decodes a YAML or JSON schema document.
func Parse(data []byte) (*schema.Node, error) {
	return schema.Parse(data)
}

// Compile builds a model from an object schema. The schema acts as its
// own root document for `$ref` resolution.
func Compile(node *schema.Node) (*model.Model, error) {
	return CompileWithOptions(node, Options{})
}

// CompileWithOptions builds a model from an object schema with explicit
// overrides.
func CompileWithOptions(node *schema.Node, opts Options) (*model.Model, error) {
	return compile.Build(node, opts.Root, compile.Options{
		Base:       opts.Base,
		Config:     opts.Config,
		Package:    opts.Package,
		Validators: opts.Validators,
		ExtraArgs:  opts.ExtraArgs,
	})
}

// CompileBytes parses and compiles a schema document in one call.
func CompileBytes(data []byte) (*model.Model, error) {
	node, err := schema.Parse(data)
	if err != nil {
		return nil, err
	}

	return Compile(node)
}

// Validate checks data against a compiled model and returns the
// validated, coerced instance.
func Validate(m *model.Model, data map[string]any) (map[string]any, error) {
	return validate.Validate(m, data)
}
