package rest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/logging"
	"github.com/colonyops/tms/internal/core/translation"
)

// FetchRecords returns every record of the given target language in the
// order the backend supplies them.
func (c *Client) FetchRecords(ctx context.Context, lang string) ([]translation.Record, error) {
	ctx = logging.WithLanguage(ctx, lang)

	var records []translation.Record
	r := c.request(ctx).
		SetPathParam("languageId", lang).
		SetResult(&records)
	if err := c.send(r, resty.MethodGet, routeRecords); err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	c.logger.Info().Ctx(ctx).Int("count", len(records)).Msg("records fetched")
	return records, nil
}

func persistCtx(ctx context.Context, lang, id string) context.Context {
	if lang != "" {
		ctx = logging.WithLanguage(ctx, lang)
	}
	return logging.WithStringID(ctx, id)
}

// AddRecord creates a record.
func (c *Client) AddRecord(ctx context.Context, p grid.RecordAddPayload) error {
	ctx = persistCtx(ctx, p.Language, p.Record.StringID)
	return c.send(c.request(ctx).SetBody(p), resty.MethodPost, routeAddRecord)
}

// RemoveRecord deletes a record.
func (c *Client) RemoveRecord(ctx context.Context, p grid.RecordRemovePayload) error {
	ctx = persistCtx(ctx, p.Language, p.RecordID)
	r := c.request(ctx).
		SetPathParam("stringId", p.RecordID).
		SetQueryParam("languageId", p.Language)
	return c.send(r, resty.MethodDelete, routeDeleteRecord)
}

// ChangeSourceLanguage updates the source language of a record.
func (c *Client) ChangeSourceLanguage(ctx context.Context, p grid.SourceLanguagePayload) error {
	ctx = persistCtx(ctx, "", p.RecordID)
	return c.send(c.request(ctx).SetBody(p), resty.MethodPut, routeUpdateMaster)
}

// ChangeTargetValue stores an edited candidate translation, or deletes one
// when the payload marks it removed.
func (c *Client) ChangeTargetValue(ctx context.Context, p grid.TargetValuePayload) error {
	ctx = persistCtx(ctx, p.Language, p.RecordID)
	if p.Removed {
		r := c.request(ctx).SetPathParams(map[string]string{
			"languageId":  p.Language,
			"stringId":    p.RecordID,
			"optionIndex": strconv.Itoa(p.Index),
		})
		return c.send(r, resty.MethodDelete, routeDeleteOption)
	}
	return c.send(c.request(ctx).SetBody(p), resty.MethodPut, routeUpdateOption)
}

// ChangeStatus updates the approval status of a record.
func (c *Client) ChangeStatus(ctx context.Context, p grid.StatusPayload) error {
	ctx = persistCtx(ctx, p.Language, p.RecordID)
	return c.send(c.request(ctx).SetBody(p), resty.MethodPut, routeApprovalStatus)
}
