package exception

import (
	"strconv"

	"github.com/yanun0323/errors"
)

// ErrVenueReported wraps every business error returned in a response envelope.
var ErrVenueReported = errors.New("venue: reported error")

// VenueError carries the code and message of a non-zero response envelope.
type VenueError struct {
	Code    int64
	Message string
}

func (e VenueError) Error() string {
	return "venue: code " + strconv.FormatInt(e.Code, 10) + ", msg: " + e.Message
}

func (e VenueError) Unwrap() error {
	return ErrVenueReported
}
