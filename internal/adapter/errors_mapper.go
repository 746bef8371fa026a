package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/freedom-sidecar/models"
	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrUnavailable,
	http.StatusGatewayTimeout:      ErrGatewayTimeout,
	http.StatusInternalServerError: ErrInternalServer,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return NewAPIError(resp.StatusCode(), body.Error)
	}
	if text := strings.TrimSpace(string(resp.Body())); text != "" && len(text) < 256 {
		return NewAPIError(resp.StatusCode(), text)
	}
	return NewAPIError(resp.StatusCode(), http.StatusText(resp.StatusCode()))
}

// NewAPIError builds the error for a response with status and message.
func NewAPIError(status int, message string) *APIError {
	kind, ok := statusErrors[status]
	if !ok {
		kind = ErrUnexpectedResponse
	}
	return &APIError{Status: status, Message: message, kind: kind}
}
