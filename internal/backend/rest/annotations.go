package rest

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/grid"
)

// AddComment appends a comment to a record's thread.
func (c *Client) AddComment(ctx context.Context, p grid.CommentPayload) error {
	ctx = persistCtx(ctx, p.Language, p.RecordID)
	return c.send(c.request(ctx).SetBody(p), resty.MethodPost, routeAddComment)
}

// FetchComments returns the comment thread of a record.
func (c *Client) FetchComments(ctx context.Context, lang, id string) ([]annotation.Comment, error) {
	ctx = persistCtx(ctx, lang, id)

	var comments []annotation.Comment
	r := c.request(ctx).
		SetPathParams(map[string]string{"languageId": lang, "stringId": id}).
		SetResult(&comments)
	if err := c.send(r, resty.MethodGet, routeComments); err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	return comments, nil
}

// FetchActivity returns the activity log of a record.
func (c *Client) FetchActivity(ctx context.Context, id string) ([]annotation.ActivityEntry, error) {
	ctx = persistCtx(ctx, "", id)

	var entries []annotation.ActivityEntry
	r := c.request(ctx).
		SetPathParam("stringId", id).
		SetResult(&entries)
	if err := c.send(r, resty.MethodGet, routeActivityLog); err != nil {
		return nil, fmt.Errorf("fetch activity: %w", err)
	}
	return entries, nil
}
