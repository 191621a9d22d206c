package validate

import (
	"fmt"
	"strings"
)

// Error describes why a value failed validation. Path locates the
// failing field inside the instance.
type Error struct {
	Message string
	Path    []string
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}

	return fmt.Sprintf(`field "%s": %s`, strings.Join(e.Path, "."), e.Message)
}

func errorf(path []string, format string, args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Path:    append([]string(nil), path...),
	}
}
