package gateway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/uniedit/anet/internal/model"
)

// DuplicateTransactionMessage replaces the gateway text for transaction error code 11.
const DuplicateTransactionMessage = "A duplicate transaction has been submitted. Please wait 2 minutes."

const emptyResponseMessage = "empty response from gateway"

// APIError is returned when the gateway rejects a request outright.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError from a response's message block.
func NewAPIError(messages *model.Messages) *APIError {
	if messages == nil || len(messages.Message) == 0 {
		return &APIError{Message: emptyResponseMessage}
	}
	first := messages.First()
	return &APIError{Code: first.Code, Message: first.Text}
}

// LogicError is a local inconsistency not attributable to a gateway message.
type LogicError struct {
	Message string
}

func (e *LogicError) Error() string {
	return e.Message
}

// NewLogicError builds a LogicError.
func NewLogicError(format string, args ...any) *LogicError {
	return &LogicError{Message: fmt.Sprintf(format, args...)}
}

// TransactionError is returned when the gateway accepted the request but the
// transaction itself failed.
type TransactionError struct {
	Errors  []model.TransactionError
	Message string
}

func (e *TransactionError) Error() string {
	return e.Message
}

// HasCode reports whether any line-item error carries the given code.
func (e *TransactionError) HasCode(code string) bool {
	for _, te := range e.Errors {
		if te.ErrorCode == code {
			return true
		}
	}
	return false
}

// NewTransactionError renders the transaction errors of a response, one
// "[Error <code>] <text>" line each. Without line-item errors it falls back
// to the top-level message text.
//
// Code 11 keeps the prefix: its line reads "[Error 11] " followed by
// DuplicateTransactionMessage. Use HasCode(model.TransactionErrorDuplicateCode)
// rather than comparing Error() to the cooldown text.
func NewTransactionError(resp *model.CreateTransactionResponse) *TransactionError {
	if resp == nil {
		return &TransactionError{Message: emptyResponseMessage}
	}

	var errs []model.TransactionError
	if resp.TransactionResponse != nil {
		errs = resp.TransactionResponse.Errors
	}

	if len(errs) == 0 {
		msg := resp.Messages.First().Text
		if msg == "" {
			msg = "transaction failed"
		}
		return &TransactionError{Message: msg}
	}

	lines := make([]string, 0, len(errs))
	for _, te := range errs {
		lines = append(lines, fmt.Sprintf("[Error %s] %s", te.ErrorCode, translateTransactionError(te)))
	}
	return &TransactionError{Errors: errs, Message: strings.Join(lines, "\n")}
}

func translateTransactionError(te model.TransactionError) string {
	switch strings.TrimLeft(strings.TrimSpace(te.ErrorCode), "0") {
	case model.TransactionErrorDuplicateCode:
		return DuplicateTransactionMessage
	default:
		return te.ErrorText
	}
}

// IsAPIError reports whether err is an APIError.
func IsAPIError(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

// IsLogicError reports whether err is a LogicError.
func IsLogicError(err error) bool {
	var target *LogicError
	return errors.As(err, &target)
}

// IsTransactionError reports whether err is a TransactionError.
func IsTransactionError(err error) bool {
	var target *TransactionError
	return errors.As(err, &target)
}
