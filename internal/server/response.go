package server

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Err is one entry of the errors array.
type Err struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Res is the envelope every endpoint returns.
type Res struct {
	Data   any   `json:"data"`
	Errors []Err `json:"errors"`
}

// EmptyObj keeps "data" an object on error responses.
type EmptyObj struct{}

func errRes(errs ...Err) Res {
	return Res{Data: EmptyObj{}, Errors: errs}
}

func okRes(data any) Res {
	return Res{Data: data, Errors: []Err{}}
}

// validationErrs converts a binding error into field errors.
func validationErrs(err error) []Err {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []Err{{Field: "body", Code: "malformed", Message: "request body is not valid JSON"}}
	}
	out := make([]Err, 0, len(ve))
	for _, fe := range ve {
		out = append(out, Err{
			Field:   fe.Field(),
			Code:    fe.Tag(),
			Message: codeMessage(fe.Tag(), fe.Param()),
		})
	}
	return out
}

func codeMessage(tag, param string) string {
	switch tag {
	case "required", "notblank":
		return "please enter some text"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", param)
	case "maxrunes":
		return fmt.Sprintf("must be at most %s characters", param)
	}
	return "invalid value"
}
