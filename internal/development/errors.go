package development

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for development files that are neither
// JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported development format")

// ValidationError reports an invalid development field by its path, e.g.
// "spans[1].top.qty".
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("development: %s %s", e.Field, e.Msg)
}
