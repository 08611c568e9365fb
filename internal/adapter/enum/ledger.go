package enum

// LedgerDirection in, out
type LedgerDirection uint8

const (
	_ledger_direction_beg LedgerDirection = iota
	LedgerDirectionIn
	LedgerDirectionOut
	_ledger_direction_end
)

var ledgerDirectionNames = []string{"", "in", "out"}

func (d LedgerDirection) IsAvailable() bool {
	return d > _ledger_direction_beg && d < _ledger_direction_end
}

func (d LedgerDirection) String() string {
	return text(ledgerDirectionNames, int(d))
}

func (d LedgerDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// TransferStatus pending, ok, failed
type TransferStatus uint8

const (
	_transfer_status_beg TransferStatus = iota
	TransferStatusPending
	TransferStatusOK
	TransferStatusFailed
	_transfer_status_end
)

var transferStatusNames = []string{"", "pending", "ok", "failed"}

func (s TransferStatus) IsAvailable() bool {
	return s > _transfer_status_beg && s < _transfer_status_end
}

func (s TransferStatus) String() string {
	return text(transferStatusNames, int(s))
}

func (s TransferStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
