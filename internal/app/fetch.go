package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/five82/bookgrid/internal/books"
)

// Fetch loads the list once and prints the validated items, as indented
// JSON or, with dump, as a go-spew dump of the decoded values.
func Fetch(ctx context.Context, opts Options, w io.Writer, dump bool) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()
	return fetch(ctx, e.client, e.log, w, dump)
}

func fetch(ctx context.Context, fetcher books.Fetcher, logger *zap.Logger, w io.Writer, dump bool) error {
	snap, err := settle(ctx, fetcher, logger)
	if err != nil {
		return err
	}
	if snap.Err != nil {
		return fmt.Errorf("fetch books: %w", snap.Err)
	}

	if dump {
		spew.Fdump(w, snap.Items)
		return nil
	}

	items := snap.Items
	if items == nil {
		items = []books.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(books.Response{Data: &items}); err != nil {
		return fmt.Errorf("encode books: %w", err)
	}
	return nil
}
