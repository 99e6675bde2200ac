// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// Response holds the common response envelope for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into a json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a human readable message for a failed binding
// validation, to be appended to the field name.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "date8":
		return " must be a valid date in YYYYMMDD format"
	case "ratepercent":
		return " must be greater than 0 and less than 100"
	case "oneof":
		return " must be one of " + fe.Param()
	case "min":
		return " must be at least " + fe.Param()
	case "max":
		return " must be at most " + fe.Param()
	}

	return " is invalid"
}
