package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MapValidationError turns validator output into a VALIDATION_ERROR naming
// the first offending field. Other errors pass through untouched.
func MapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	return NewWithReason(
		CodeInvalidInput,
		field,
		fmt.Sprintf("%s tidak valid (%s)", field, fe.Tag()),
		http.StatusBadRequest,
	).Wrap(err)
}
