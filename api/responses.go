package api

import (
	"github.com/glowbooth/media-export/common"
)

type EmptyResponse struct{}

// StreamedResponse is returned by handlers that already wrote the response
// body themselves (file downloads).
type StreamedResponse struct{}

type ErrorResponse struct {
	Code    string `json:"errcode"`
	Message string `json:"error"`
}

func InternalServerError(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeUnknown, message}
}

func MethodNotAllowed() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeMethodNotAllowed, "Method Not Allowed"}
}

func RateLimitReached() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeRateLimitExceeded, "Rate Limited"}
}

func NotFoundError() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeNotFound, "Not found"}
}

func AuthFailed() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeAuthFailed, "Authentication Failed"}
}

func BadRequest(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeBadRequest, message}
}

func NothingToExport() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeNothingToExport, "Nothing to export"}
}

func ExportFailed(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeExportFailed, message}
}
