package validate

import (
	"strings"

	interrors "github.com/classpoint/classpoint-go/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var instance = validator.New(validator.WithRequiredStructEnabled())

// Struct validates v against its `validate` tags, returning an error that
// wraps ErrInvalidPayload and names the failing fields.
func Struct(v any) error {
	err := instance.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "[validate.Struct]")
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return errors.Wrapf(interrors.ErrInvalidPayload, "invalid fields: %s", strings.Join(fields, ", "))
}
