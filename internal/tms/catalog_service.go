package tms

import (
	"context"
	"errors"

	"github.com/colonyops/tms/internal/backend/rest"
	"github.com/colonyops/tms/internal/core/catalog"
	"github.com/colonyops/tms/internal/core/pagination"
	"github.com/colonyops/tms/pkg/kv"
)

// ErrOffline is returned by operations that need the API when none is
// configured.
var ErrOffline = errors.New("no backend configured")

// CatalogRemote lists projects, variants and languages. *rest.Client
// implements it.
type CatalogRemote interface {
	Projects(ctx context.Context) ([]catalog.Project, error)
	Variants(ctx context.Context, projectID string) ([]catalog.Variant, error)
	Languages(ctx context.Context, variantID string) ([]catalog.Language, error)
}

var _ CatalogRemote = (*rest.Client)(nil)

// Query narrows and pages a catalog listing.
type Query struct {
	Search string
	Page   int
}

// CatalogService serves the browse listings. Each listing is fetched once
// per process; paging and searching work on the memoized copy.
type CatalogService struct {
	remote CatalogRemote

	projects  *kv.Store[string, []catalog.Project]
	variants  *kv.Store[string, []catalog.Variant]
	languages *kv.Store[string, []catalog.Language]
}

// NewCatalogService creates a catalog service. A nil remote makes every
// call fail with ErrOffline.
func NewCatalogService(remote CatalogRemote) *CatalogService {
	return &CatalogService{
		remote:    remote,
		projects:  kv.New[string, []catalog.Project](),
		variants:  kv.New[string, []catalog.Variant](),
		languages: kv.New[string, []catalog.Language](),
	}
}

// Refresh drops the memoized listings.
func (s *CatalogService) Refresh() {
	s.projects.Clear()
	s.variants.Clear()
	s.languages.Clear()
}

// Projects returns one page of projects matching q.
func (s *CatalogService) Projects(ctx context.Context, q Query) (pagination.Page[catalog.Project], error) {
	if s.remote == nil {
		return pagination.Page[catalog.Project]{}, ErrOffline
	}
	projects, err := s.projects.GetOrLoad("", func() ([]catalog.Project, error) {
		return s.remote.Projects(ctx)
	})
	if err != nil {
		return pagination.Page[catalog.Project]{}, err
	}
	return pagination.Paginate(catalog.FilterProjects(projects, q.Search), pagination.DefaultPageSize, q.Page), nil
}

// Variants returns one page of the variants of projectID matching q.
func (s *CatalogService) Variants(ctx context.Context, projectID string, q Query) (pagination.Page[catalog.Variant], error) {
	if s.remote == nil {
		return pagination.Page[catalog.Variant]{}, ErrOffline
	}
	variants, err := s.variants.GetOrLoad(projectID, func() ([]catalog.Variant, error) {
		return s.remote.Variants(ctx, projectID)
	})
	if err != nil {
		return pagination.Page[catalog.Variant]{}, err
	}
	return pagination.Paginate(catalog.FilterVariants(variants, q.Search), pagination.DefaultPageSize, q.Page), nil
}

// Languages returns one page of the languages of variantID matching q.
func (s *CatalogService) Languages(ctx context.Context, variantID string, q Query) (pagination.Page[catalog.Language], error) {
	if s.remote == nil {
		return pagination.Page[catalog.Language]{}, ErrOffline
	}
	langs, err := s.languages.GetOrLoad(variantID, func() ([]catalog.Language, error) {
		return s.remote.Languages(ctx, variantID)
	})
	if err != nil {
		return pagination.Page[catalog.Language]{}, err
	}
	return pagination.Paginate(catalog.FilterLanguages(langs, q.Search), pagination.DefaultPageSize, q.Page), nil
}
