package compile

import (
	"fmt"

	"github.com/viljami/malli/schema"
)

// UnsupportedTypeError is returned when a schema node declares a `type`
// outside the supported set. Node carries the offending schema node for
// diagnostics.
type UnsupportedTypeError struct {
	Type string
	Node *schema.Node
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf(`unsupported schema type "%s"`, e.Type)
}

// ReferenceError is returned when a `$ref` pointer cannot be walked to
// completion.
type ReferenceError struct {
	Ref     string
	Segment string
}

func (e *ReferenceError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf(`failed to resolve reference "%s": no such key "%s"`, e.Ref, e.Segment)
	}

	return fmt.Sprintf(`failed to resolve reference "%s"`, e.Ref)
}
