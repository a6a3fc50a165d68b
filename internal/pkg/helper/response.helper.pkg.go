package helper

import (
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/logger"
	"errors"
	"net/http"
)

// ParseResponse fills in the defaults of a service response: a message
// derived from the status code and an error log line for server failures.
func ParseResponse(r *types.Response) *types.Response {
	if r.Code == 0 {
		r.Code = http.StatusOK
		if r.Error != nil {
			r.Code = http.StatusInternalServerError
		}
	}

	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}

	if r.Error != nil && r.Code >= http.StatusInternalServerError {
		logger.Error.Printf("%d %s: %v", r.Code, r.Message, r.Error)
	}

	return r
}

// ToResponseAPI converts a service response into the JSON envelope.
// Field errors are exposed as a map; other errors only as their message.
func ToResponseAPI(r *types.Response) *types.ResponseAPI {
	res := &types.ResponseAPI{
		Status:  r.Code,
		Message: r.Message,
		Data:    r.Data,
	}

	if r.Error == nil {
		return res
	}

	var fieldErrs types.FieldErrors
	switch {
	case errors.As(r.Error, &fieldErrs):
		res.Error = fieldErrs.Fields()
	case r.Code >= http.StatusInternalServerError:
		res.Error = http.StatusText(r.Code)
	default:
		res.Error = r.Error.Error()
	}

	return res
}
