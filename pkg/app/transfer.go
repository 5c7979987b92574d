package app

import (
	"context"

	"tableflip.dev/inbox/pkg/query"
	"tableflip.dev/inbox/pkg/report"
	"tableflip.dev/inbox/pkg/transfer"
)

// Export captures the workspace as an import/export snapshot.
func (s *Service) Export(ctx context.Context) (transfer.Snapshot, error) {
	if err := s.guard(); err != nil {
		return transfer.Snapshot{}, err
	}
	return transfer.Export(s.Store), nil
}

// Import merges a snapshot into the workspace, returning the conflicts
// that need interactive resolution.
func (s *Service) Import(ctx context.Context, snap transfer.Snapshot) ([]transfer.Conflict, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return transfer.Import(s.Store, snap)
}

// ResolveConflict settles one import conflict.
func (s *Service) ResolveConflict(ctx context.Context, c transfer.Conflict, choice transfer.Choice) error {
	if err := s.guard(); err != nil {
		return err
	}
	return transfer.Resolve(s.Store, c, choice)
}

// Print renders the view a selector produces through the report pipeline.
func (s *Service) Print(ctx context.Context, sel query.Selector, filters query.Filters, search string, fields []query.Field, srt query.Sort, title string, p *report.Pipeline) error {
	tasks, err := s.ViewTasks(ctx, sel, filters, search, fields, srt)
	if err != nil {
		return err
	}
	return p.Run(ctx, tasks, title)
}
