package common

const ErrCodeUnknown = "X_UNKNOWN"
const ErrCodeBadRequest = "X_BAD_REQUEST"
const ErrCodeNotFound = "X_NOT_FOUND"
const ErrCodeAuthFailed = "X_AUTH_FAILED"
const ErrCodeMethodNotAllowed = "X_METHOD_NOT_ALLOWED"
const ErrCodeRateLimitExceeded = "X_RATE_LIMITED"
const ErrCodeNothingToExport = "X_NOTHING_TO_EXPORT"
const ErrCodeExportFailed = "X_EXPORT_FAILED"
