package serialize

import "fmt"

// SerializationError reports an export value that cannot be written as
// module source. No partial output accompanies it.
type SerializationError struct {
	Export string
	Path   string
	Reason string
}

func (e *SerializationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("serialize export %q: %s", e.Export, e.Reason)
	}
	return fmt.Sprintf("serialize export %q at %s: %s", e.Export, e.Path, e.Reason)
}

const invalidExports = "invalid exports: you can only export plain objects, arrays, strings, numbers and null"
