package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/pkg/exception"
)

// dirFetcher serves instruments-info pages recorded as files: <dir>/<kind>/*.json, read in name
// order. The cursor is the index of the next file.
type dirFetcher struct {
	dir string
}

func (f dirFetcher) pages(kind enum.MarketKind) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(f.dir, kind.String(), "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (f dirFetcher) FetchInstruments(ctx context.Context, kind enum.MarketKind, cursor string) (catalog.Page, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Page{}, err
	}

	files, err := f.pages(kind)
	if err != nil {
		return catalog.Page{}, err
	}

	index := 0
	if len(cursor) != 0 {
		index, err = strconv.Atoi(cursor)
		if err != nil {
			return catalog.Page{}, errors.Wrapf(exception.ErrInvalidArgument, "cursor: %q", cursor)
		}
	}

	if index >= len(files) {
		return catalog.Page{}, nil
	}

	payload, err := os.ReadFile(files[index])
	if err != nil {
		return catalog.Page{}, errors.Wrapf(err, "read page %s", files[index])
	}

	page, err := catalog.PageFromPayload(payload)
	if err != nil {
		return catalog.Page{}, errors.Wrapf(err, "decode page %s", files[index])
	}

	page.Cursor = ""
	if index+1 < len(files) {
		page.Cursor = strconv.Itoa(index + 1)
	}

	return page, nil
}
