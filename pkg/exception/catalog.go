package exception

import "github.com/yanun0323/errors"

var (
	ErrUnsupportedMarketKind = errors.New("catalog: unsupported market kind")
	ErrMarketNotFound        = errors.New("catalog: market not found")
	ErrInvalidOptionID       = errors.New("catalog: invalid option id")
	ErrInvalidDateCode       = errors.New("catalog: invalid date code")
	ErrNilFetcher            = errors.New("catalog: nil fetcher")
	ErrPaginationOverflow    = errors.New("catalog: too many pages")
)
