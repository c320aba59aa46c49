package view

import (
	"log/slog"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
)

// Option configures a Session.
type Option func(*Session)

// WithPageSize sets the page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.state.PageSize = n
		}
	}
}

// WithSorter sets the sorter used for text collation.
func WithSorter(sorter clients.Sorter) Option {
	return func(s *Session) {
		s.sorter = sorter
	}
}

// WithTab sets the initial tab.
func WithTab(tab clients.Tab) Option {
	return func(s *Session) {
		s.state.Tab = tab
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
