package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
)

// ErrUnsupportedFormat is returned for output formats other than pretty and json.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ValidateOutputFormat accepts the pretty and json renderers.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("%w %q (use %s or %s)", ErrUnsupportedFormat, format,
		constants.OutputFormatPretty, constants.OutputFormatJSON)
}
