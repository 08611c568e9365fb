package extract

import (
	"connector/internal/errors"
	"connector/pkg/exception"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/logs"
)

// decoder keeps JSON numbers as json.Number so monetary values never pass through float64.
var decoder = sonic.Config{
	UseNumber: true,
}.Froze()

// Decode decodes a raw venue payload into generic JSON values.
func Decode(payload []byte) (any, error) {
	if len(payload) == 0 {
		return nil, exception.ErrEmptyPayload
	}

	var v any
	if err := decoder.Unmarshal(payload, &v); err != nil {
		return nil, errors.Wrap(err, "decode payload")
	}

	return v, nil
}

// DecodeRecord decodes a payload whose root is a JSON object.
func DecodeRecord(payload []byte) (Record, error) {
	v, err := Decode(payload)
	if err != nil {
		return nil, err
	}

	rec, ok := v.(Record)
	if !ok {
		return nil, errors.Wrap(exception.ErrMalformedResponse, "payload root is not an object")
	}

	return rec, nil
}

// Result unwraps the venue response envelope. Both the unified (retCode/retMsg) and the classic
// (ret_code/ret_msg) spellings are accepted. A non-zero code is returned as exception.VenueError.
// A successful envelope without a result yields an empty record.
func Result(root Record) (Record, error) {
	if root == nil {
		return nil, exception.ErrMalformedResponse
	}

	if !Has(root, "retCode", "ret_code") {
		return nil, errors.Wrap(exception.ErrMalformedResponse, "missing response code")
	}

	if code := Int64(root, "retCode", "ret_code"); code != 0 {
		return nil, exception.VenueError{
			Code:    code,
			Message: String(root, "retMsg", "ret_msg"),
		}
	}

	result := Object(root, "result")
	if result == nil {
		return Record{}, nil
	}

	return result, nil
}

// ResultList unwraps the envelope and returns result.list (or result.data for classic endpoints).
func ResultList(root Record) ([]any, error) {
	result, err := Result(root)
	if err != nil {
		return nil, err
	}

	return List(result, "list", "data", "rows"), nil
}

// Each parses every element of items with parse. Elements that are not objects or that fail to
// parse are reported in the returned errors and skipped; they never abort the batch.
func Each[T any](kind string, items []any, parse func(Record) (T, error)) ([]T, []errors.RecordError) {
	result := make([]T, 0, len(items))
	var failed []errors.RecordError
	for i, item := range items {
		rec, ok := item.(Record)
		if !ok {
			failed = append(failed, errors.RecordError{Index: i, Err: exception.ErrMalformedResponse})
			logs.Errorf("skip %s record %d, err: %+v", kind, i, exception.ErrMalformedResponse)
			continue
		}

		val, err := parse(rec)
		if err != nil {
			failed = append(failed, errors.RecordError{
				Index: i,
				ID:    String(rec, "symbol", "id", "orderId", "coin"),
				Err:   err,
			})
			logs.Errorf("skip %s record %d, err: %+v", kind, i, err)
			continue
		}

		result = append(result, val)
	}

	return result, failed
}
