package errors

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	_ error = (*wrappedError)(nil)
	_ error = (*RecordError)(nil)
)

func New(text string) error {
	return errors.New(text)
}

// Wrap prefixes err with text. A nil err stays nil.
func Wrap(err error, text string) error {
	if err == nil {
		return nil
	}

	if len(text) == 0 {
		return err
	}

	return &wrappedError{
		err: err,
		msg: text,
	}
}

// Wrapf is Wrap with a formatted prefix.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	err error
	msg string
}

const sep = ", err: "

func (err wrappedError) Error() string {
	if err.err == nil {
		return err.msg
	}

	return err.msg + sep + err.err.Error()
}

func (err wrappedError) Unwrap() error {
	if err.err == nil {
		return errors.New(err.msg)
	}

	return err.err
}

// RecordError reports a single record that failed to normalize inside a batch.
// Siblings of the record are still normalized.
type RecordError struct {
	Index int
	ID    string
	Err   error
}

func (err RecordError) Error() string {
	buf := make([]byte, 0, 64)
	buf = append(buf, "record "...)
	buf = strconv.AppendInt(buf, int64(err.Index), 10)
	if len(err.ID) != 0 {
		buf = append(buf, " ("...)
		buf = append(buf, err.ID...)
		buf = append(buf, ')')
	}

	if err.Err != nil {
		buf = append(buf, sep...)
		buf = append(buf, err.Err.Error()...)
	}

	return string(buf)
}

func (err RecordError) Unwrap() error {
	return err.Err
}

// Join folds record errors into one error, or nil when there are none.
func Join(errs []RecordError) error {
	if len(errs) == 0 {
		return nil
	}

	joined := make([]error, 0, len(errs))
	for _, err := range errs {
		joined = append(joined, err)
	}

	return errors.Join(joined...)
}
