package loader

import "fmt"

// LoadError reports a malformed record with its JSON-path location.
// Load errors are unrecoverable and always precede execution.
type LoadError struct {
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error at %s: %s", e.Path, e.Message)
}

func errAt(path, format string, args ...any) error {
	return &LoadError{Path: path, Message: fmt.Sprintf(format, args...)}
}
