package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"jobboard/internal/dtos"
	"jobboard/internal/models"
)

// Errors maps a field name to its list of validation messages, matching the
// shape of the API's 422 "errors" object.
type Errors map[string][]string

func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// First returns the first message recorded for a field, or "".
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func message(fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}

func collect(err error) Errors {
	errs := Errors{}
	if err == nil {
		return errs
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs.Add(fe.Field(), message(fe))
		}
	}
	return errs
}

// JobPosting applies the shared job posting rule set. The tag-expressible
// rules run through the validator instance; the cross-field salary and
// datetime rules are checked here because they compare decimals and parsed
// timestamps. When postedAtNotPast is true, posted_at must not be earlier
// than the current time (the API applies this on create and update, the web
// pre-check does not).
func JobPosting(in *dtos.JobPostingInput, postedAtNotPast bool) Errors {
	errs := collect(validate.Struct(in))

	if in.SalaryMin != nil && in.SalaryMin.IsNegative() {
		errs.Add("salary_min", "The salary min field must be at least 0.")
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && in.SalaryMax.LessThan(*in.SalaryMin) {
		errs.Add("salary_max", "The salary max field must be greater than or equal to salary min.")
	}

	var posted, expires models.DateTime
	postedOK, expiresOK := false, false

	if in.PostedAt != "" {
		if p, err := models.ParseDateTime(in.PostedAt); err != nil {
			errs.Add("posted_at", "The posted at field must match the format Y-m-d H:i:s.")
		} else {
			posted, postedOK = p, true
		}
	}
	if in.ExpiresAt != "" {
		if x, err := models.ParseDateTime(in.ExpiresAt); err != nil {
			errs.Add("expires_at", "The expires at field must match the format Y-m-d H:i:s.")
		} else {
			expires, expiresOK = x, true
		}
	}

	if postedOK && postedAtNotPast && posted.Before(time.Now().Truncate(time.Second)) {
		errs.Add("posted_at", "The posted at field must be a date after or equal to now.")
	}
	if postedOK && expiresOK && expires.Before(posted.Time) {
		errs.Add("expires_at", "The expires at field must be a date after or equal to posted at.")
	}

	return errs
}

// Login validates the credential shape only; credential correctness is the
// auth service's concern.
func Login(in *dtos.LoginInput) Errors {
	return collect(validate.Struct(in))
}
