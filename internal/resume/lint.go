package resume

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Issue is a presentation problem found in a document. Issues never block
// editing, saving, or rendering.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

var validate = validator.New()

// Lint checks formatting of contact details and links.
func Lint(d Document) []Issue {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Field: "(document)", Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Field:   fe.Namespace(),
			Message: lintMessage(fe),
		})
	}
	return issues
}

func lintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return fmt.Sprintf("%q is not a valid email address", fe.Value())
	case "url":
		return fmt.Sprintf("%q is not a valid URL", fe.Value())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
