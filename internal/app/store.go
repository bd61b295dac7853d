package app

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/sheetgrid/internal/config"
	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/memstore"
	"github.com/specialistvlad/sheetgrid/internal/persist"
	"github.com/specialistvlad/sheetgrid/internal/record"
	"github.com/specialistvlad/sheetgrid/internal/socketstore"
	"github.com/specialistvlad/sheetgrid/internal/sqlitestore"
)

// openStore builds the store the sheet names. The closer is nil for stores
// without resources to release.
func openStore(ctx context.Context, sheet *config.Model) (persist.Store, io.Closer, error) {
	kind, err := sheet.StoreKind()
	if err != nil {
		return nil, nil, err
	}
	logger := ctxlog.FromContext(ctx)
	logger.Info("Opening store.", "kind", kind)

	switch kind {
	case config.StoreSQLite:
		dsn := sheet.Store.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		s, err := sqlitestore.Open(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.StoreSocketIO:
		if sheet.Store.URL == "" {
			return nil, nil, fmt.Errorf("store %q needs a url", kind)
		}
		s, err := socketstore.Dial(ctx, socketstore.Options{
			URL:                sheet.Store.URL,
			Namespace:          sheet.Store.Namespace,
			InsecureSkipVerify: sheet.Store.InsecureSkipVerify,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
	return memstore.New(), nil, nil
}

// initialRows merges the sheet's rows with what a listing store already
// holds. Stored rows win by id and keep their order after the sheet's rows;
// sheet rows the store does not know yet are saved to it first.
func initialRows(ctx context.Context, store persist.Store, defined []*record.Record) ([]*record.Record, error) {
	lister, ok := store.(persist.Lister)
	if !ok {
		return defined, nil
	}
	stored, err := lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored rows: %w", err)
	}
	byID := make(map[string]*record.Record, len(stored))
	for _, r := range stored {
		byID[r.ID()] = r
	}

	rows := make([]*record.Record, 0, len(defined)+len(stored))
	used := make(map[string]bool, len(defined))
	for _, r := range defined {
		used[r.ID()] = true
		if s, ok := byID[r.ID()]; ok {
			rows = append(rows, s)
			continue
		}
		saved, err := store.Save(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("seed row %q: %w", r.ID(), err)
		}
		rows = append(rows, saved)
	}
	for _, r := range stored {
		if !used[r.ID()] {
			rows = append(rows, r)
		}
	}
	ctxlog.FromContext(ctx).Debug("Initial rows merged.", "defined", len(defined), "stored", len(stored), "total", len(rows))
	return rows, nil
}
