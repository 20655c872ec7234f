// utils/validate.go
package utils

import (
	"github.com/go-playground/validator/v10"
)

// Validate is the shared request validator. Payload structs in handlers
// carry `validate` tags; handlers map a validation failure to 400.
var Validate = validator.New()
