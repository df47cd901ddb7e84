package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/logger"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Data[T any] struct {
	Status string `json:"status"`
	Data   *T     `json:"data,omitempty"`
}

type Error struct {
	Status string        `json:"status"`
	Error  *ErrorPayload `json:"error,omitempty"`
}

// ErrorPayload carries the machine-readable error kind next to the
// human-readable message, so clients can tell "room unavailable" apart
// from "storage unreachable".
type ErrorPayload struct {
	Kind    failure.Kind `json:"kind"`
	Field   string       `json:"field,omitempty"`
	Message string       `json:"message"`
}

type Message struct {
	Status  string  `json:"status"`
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Status: StatusSuccess, Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Status: StatusSuccess, Data: &jsonPayload})
}

// WithError sends a response with an error payload
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	payload := ErrorPayload{
		Kind:    failure.GetKind(err),
		Message: err.Error(),
	}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		payload.Field = fail.Field
	}

	response(writer, code, Error{Status: StatusError, Error: &payload})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	msg := constant.ResponseErrorRequestLimitExceeded
	response(writer, http.StatusTooManyRequests, Message{Status: StatusError, Message: &msg})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	msg := constant.ResponseErrorPrepareShutdown
	response(writer, http.StatusServiceUnavailable, Message{Status: StatusError, Message: &msg})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	msg := constant.ResponseErrorUnhealthy
	response(writer, http.StatusServiceUnavailable, Message{Status: StatusError, Message: &msg})
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
