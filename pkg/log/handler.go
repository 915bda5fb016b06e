package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

// ErrorHandler decorates records that carry an ErrAttrKey attribute with the
// stack trace recorded by cockroachdb/errors and, when the caller did not set
// one, an ErrorCodeKey derived from the error type.
type ErrorHandler struct {
	next slog.Handler
}

// WrapErrorHandler returns next wrapped in an ErrorHandler.
func WrapErrorHandler(next slog.Handler) slog.Handler {
	return &ErrorHandler{next: next}
}

func (h *ErrorHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *ErrorHandler) Handle(ctx context.Context, r slog.Record) error {
	var (
		err     error
		hasCode bool
	)
	r.Attrs(func(attr slog.Attr) bool {
		switch attr.Key {
		case ErrAttrKey:
			if e, ok := attr.Value.Any().(error); ok && err == nil {
				err = e
			}
		case ErrorCodeKey:
			hasCode = true
		}
		return true
	})
	if err == nil {
		return h.next.Handle(ctx, r)
	}

	if st := extractStacktrace(err); st != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, st))
	}
	if code := errorCode(err); code != "" && !hasCode {
		r.AddAttrs(slog.String(ErrorCodeKey, code))
	}
	return h.next.Handle(ctx, r)
}

func (h *ErrorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrorHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ErrorHandler) WithGroup(name string) slog.Handler {
	return &ErrorHandler{next: h.next.WithGroup(name)}
}

// extractStacktrace returns the stack recorded by the outermost layer of err
// that has one. cockroachdb/errors keeps it as the first safe detail.
func extractStacktrace(err error) string {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		if details := errors.GetSafeDetails(e).SafeDetails; len(details) > 0 && details[0] != "" {
			return details[0]
		}
	}
	return ""
}

// errorCode maps the library's error types to ErrorCodeKey values.
func errorCode(err error) string {
	var (
		notFitted  *gdregErrors.NotFittedError
		dimension  *gdregErrors.DimensionError
		divergence *gdregErrors.DivergenceWarning
	)
	switch {
	case gdregErrors.As(err, &notFitted):
		return ErrorNotFitted
	case gdregErrors.As(err, &dimension):
		return ErrorDimensionMismatch
	case gdregErrors.Is(err, gdregErrors.ErrZeroVariance):
		return ErrorZeroVariance
	case gdregErrors.Is(err, gdregErrors.ErrEmptyData):
		return ErrorEmptyData
	case gdregErrors.As(err, &divergence):
		return ErrorDivergence
	}
	return ""
}
