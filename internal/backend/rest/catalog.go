package rest

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/colonyops/tms/internal/core/catalog"
)

// Projects lists every project visible to the token.
func (c *Client) Projects(ctx context.Context) ([]catalog.Project, error) {
	var projects []catalog.Project
	if err := c.send(c.request(ctx).SetResult(&projects), resty.MethodGet, routeProjects); err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	return projects, nil
}

// Variants lists the variants of a project.
func (c *Client) Variants(ctx context.Context, projectID string) ([]catalog.Variant, error) {
	var variants []catalog.Variant
	r := c.request(ctx).
		SetPathParam("projectId", projectID).
		SetResult(&variants)
	if err := c.send(r, resty.MethodGet, routeVariants); err != nil {
		return nil, fmt.Errorf("fetch variants: %w", err)
	}
	return variants, nil
}

// Languages lists the target languages of a variant.
func (c *Client) Languages(ctx context.Context, variantID string) ([]catalog.Language, error) {
	var langs []catalog.Language
	r := c.request(ctx).
		SetPathParam("variantId", variantID).
		SetResult(&langs)
	if err := c.send(r, resty.MethodGet, routeLanguages); err != nil {
		return nil, fmt.Errorf("fetch languages: %w", err)
	}
	return langs, nil
}
