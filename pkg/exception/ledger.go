package exception

import "github.com/yanun0323/errors"

var (
	ErrTransferInvalidRequest = errors.New("transfer: invalid request")
	ErrUnknownAccount         = errors.New("transfer: unknown account")
)
