package mock

import (
	"context"

	"github.com/fwojciec/marketway"
)

var _ marketway.LineService = (*LineService)(nil)

// LineService is a mock implementation of marketway.LineService.
type LineService struct {
	CreateLineFn     func(ctx context.Context, line *marketway.Line) error
	FindLineByNameFn func(ctx context.Context, name string) (*marketway.Line, error)
	FindLinesFn      func(ctx context.Context, filter marketway.LineFilter) ([]*marketway.Line, error)
	DeleteLineFn     func(ctx context.Context, name string) error
}

func (s *LineService) CreateLine(ctx context.Context, line *marketway.Line) error {
	return s.CreateLineFn(ctx, line)
}

func (s *LineService) FindLineByName(ctx context.Context, name string) (*marketway.Line, error) {
	return s.FindLineByNameFn(ctx, name)
}

func (s *LineService) FindLines(ctx context.Context, filter marketway.LineFilter) ([]*marketway.Line, error) {
	return s.FindLinesFn(ctx, filter)
}

func (s *LineService) DeleteLine(ctx context.Context, name string) error {
	return s.DeleteLineFn(ctx, name)
}

var _ marketway.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of marketway.HistoryService.
type HistoryService struct {
	FindHistoryFn func(ctx context.Context) (string, error)
	SetHistoryFn  func(ctx context.Context, text string) error
}

func (s *HistoryService) FindHistory(ctx context.Context) (string, error) {
	return s.FindHistoryFn(ctx)
}

func (s *HistoryService) SetHistory(ctx context.Context, text string) error {
	return s.SetHistoryFn(ctx, text)
}

var _ marketway.Directory = (*Directory)(nil)

// Directory is a mock implementation of marketway.Directory.
type Directory struct {
	SearchLinesFn func(ctx context.Context, term string) ([]*marketway.Line, error)
	FindLineFn    func(ctx context.Context, name string) (*marketway.Line, error)
	HistoryFn     func(ctx context.Context) (string, error)
}

func (d *Directory) SearchLines(ctx context.Context, term string) ([]*marketway.Line, error) {
	return d.SearchLinesFn(ctx, term)
}

func (d *Directory) FindLine(ctx context.Context, name string) (*marketway.Line, error) {
	return d.FindLineFn(ctx, name)
}

func (d *Directory) History(ctx context.Context) (string, error) {
	return d.HistoryFn(ctx)
}

var _ marketway.Navigator = (*Navigator)(nil)

// Navigator is a mock implementation of marketway.Navigator.
type Navigator struct {
	NavigateFn func(ctx context.Context, current marketway.Position, lineName string) (*marketway.Route, error)
}

func (n *Navigator) Navigate(ctx context.Context, current marketway.Position, lineName string) (*marketway.Route, error) {
	return n.NavigateFn(ctx, current, lineName)
}

var _ marketway.CatalogSource = (*CatalogSource)(nil)

// CatalogSource is a mock implementation of marketway.CatalogSource.
type CatalogSource struct {
	CatalogFn func() *marketway.Catalog
}

func (s *CatalogSource) Catalog() *marketway.Catalog {
	return s.CatalogFn()
}
