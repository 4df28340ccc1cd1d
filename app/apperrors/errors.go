package apperrors

import "errors"

// Code identifies one of the closed set of failure categories the API can
// return. The string values double as stable wire-level error codes.
type Code string

const (
	CodeAuthInvalid         Code = "auth-invalid"
	CodeUserNotFound        Code = "user-not-found"
	CodePostNotFound        Code = "post-not-exists"
	CodeCommentNotFound     Code = "comment-not-exists"
	CodeUnauthPostUpdate    Code = "unauthorised-post-update"
	CodeUnauthPostDelete    Code = "unauthorised-post-delete"
	CodeUnauthCommentDelete Code = "unauthorised-comment-delete"
	CodeRogueComment        Code = "rogue-comment"
	CodeConditionFailed     Code = "condition-failed"
	CodeValidation          Code = "validation-error"
	CodeUnknown             Code = "unknown-error"
)

// Error is a typed application error carrying a stable code and a
// human-readable message. It is the only error type services return to
// callers.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Is makes two application errors equal when their codes match, so callers
// can test with errors.Is against a constructor result.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func newError(code Code, msg, fallback string) *Error {
	if msg == "" {
		msg = fallback
	}
	return &Error{Code: code, Message: msg}
}

func AuthInvalid(msg string) *Error {
	return newError(CodeAuthInvalid, msg, "Authentication Invalid")
}

func UserNotFound(msg string) *Error {
	return newError(CodeUserNotFound, msg, "User does not exist")
}

func PostNotFound(msg string) *Error {
	return newError(CodePostNotFound, msg, "The post you are attempting to access does not exist")
}

func CommentNotFound(msg string) *Error {
	return newError(CodeCommentNotFound, msg, "The comment does not exist")
}

func UnauthorisedPostUpdate(msg string) *Error {
	return newError(CodeUnauthPostUpdate, msg, "User is not authorised to update this post")
}

func UnauthorisedPostDelete(msg string) *Error {
	return newError(CodeUnauthPostDelete, msg, "User is not authorised to delete this post")
}

func UnauthorisedCommentDelete(msg string) *Error {
	return newError(CodeUnauthCommentDelete, msg, "User is not authorised to delete this comment")
}

func RogueComment(msg string) *Error {
	return newError(CodeRogueComment, msg, "The comment does not belong to this post")
}

func ConditionFailed(msg string) *Error {
	return newError(CodeConditionFailed, msg, "Conditional check failed")
}

func Validation(msg string) *Error {
	return newError(CodeValidation, msg, "Invalid request")
}

func Unknown(msg string) *Error {
	return newError(CodeUnknown, msg, "Unknown Error")
}

// CodeOf extracts the application code from err, or CodeUnknown when the
// error did not originate in this package.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}
