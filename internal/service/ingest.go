package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
)

// ClientWriter stores clients.
type ClientWriter interface {
	Upsert(ctx context.Context, c clients.Client) error
}

// ImportService loads client records into the record source.
type ImportService struct {
	Clients ClientWriter
	Logger  *slog.Logger
}

type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// ImportYAML reads a YAML list of clients and upserts the valid ones.
// Invalid or duplicate records are skipped and reported in the result; a
// decode failure aborts the whole import.
func (s *ImportService) ImportYAML(ctx context.Context, r io.Reader) (ImportResult, error) {
	res := ImportResult{}
	list, err := clients.DecodeYAML(r)
	if err != nil {
		return res, err
	}
	seen := make(map[string]bool, len(list))
	for i, c := range list {
		if err := c.Validate(); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		if seen[c.ID] {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("record %d: duplicate id %s", i+1, c.ID))
			continue
		}
		seen[c.ID] = true
		if err := s.Clients.Upsert(ctx, c); err != nil {
			return res, fmt.Errorf("upsert client %s: %w", c.ID, err)
		}
		res.Imported++
	}
	s.logger().Info("clients imported",
		slog.Int("imported", res.Imported),
		slog.Int("skipped", res.Skipped))
	return res, nil
}

func (s *ImportService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
