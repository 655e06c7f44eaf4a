package grid

import (
	"context"
	"fmt"

	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/translation"
)

// Op names an outbound persist operation.
type Op string

const (
	OpRecordAdd            Op = "record.add"
	OpRecordRemove         Op = "record.remove"
	OpSourceLanguageChange Op = "source-language.change"
	OpTargetValueChange    Op = "target-value.change"
	OpStatusChange         Op = "status.change"
	OpCommentAdd           Op = "comment.add"
)

// RecordAddPayload asks the backend to create a record.
type RecordAddPayload struct {
	Language string             `json:"languageId"`
	Record   translation.Record `json:"record"`
}

// RecordRemovePayload asks the backend to delete a record.
type RecordRemovePayload struct {
	Language string `json:"languageId"`
	RecordID string `json:"stringId"`
}

// SourceLanguagePayload carries a changed source language.
type SourceLanguagePayload struct {
	RecordID       string `json:"stringId"`
	SourceLanguage string `json:"sourceLanguage"`
}

// TargetValuePayload carries one changed candidate translation. Values is
// the full list after the change. When Removed is set, Index names the
// value that was deleted and Value holds its last content.
type TargetValuePayload struct {
	Language string   `json:"languageId"`
	RecordID string   `json:"stringId"`
	Index    int      `json:"optionIndex"`
	Value    string   `json:"value"`
	Values   []string `json:"values"`
	Removed  bool     `json:"removed,omitempty"`
}

// StatusPayload carries a changed approval status.
type StatusPayload struct {
	Language string             `json:"languageId"`
	RecordID string             `json:"stringId"`
	Status   translation.Status `json:"status"`
}

// CommentPayload carries a new comment.
type CommentPayload struct {
	Language string             `json:"languageId"`
	RecordID string             `json:"stringId"`
	Comment  annotation.Comment `json:"comment"`
}

// Effect is a persist operation produced by a workspace mutation. The
// workspace has already applied the change locally; the effect only tells
// the backend about it.
type Effect struct {
	Op      Op
	Payload any
}

// RecordID returns the id of the record the effect refers to.
func (e Effect) RecordID() string {
	switch p := e.Payload.(type) {
	case RecordAddPayload:
		return p.Record.StringID
	case RecordRemovePayload:
		return p.RecordID
	case SourceLanguagePayload:
		return p.RecordID
	case TargetValuePayload:
		return p.RecordID
	case StatusPayload:
		return p.RecordID
	case CommentPayload:
		return p.RecordID
	default:
		return ""
	}
}

// Backend receives persist operations. Implementations perform I/O; the
// workspace never calls them itself.
type Backend interface {
	AddRecord(ctx context.Context, p RecordAddPayload) error
	RemoveRecord(ctx context.Context, p RecordRemovePayload) error
	ChangeSourceLanguage(ctx context.Context, p SourceLanguagePayload) error
	ChangeTargetValue(ctx context.Context, p TargetValuePayload) error
	ChangeStatus(ctx context.Context, p StatusPayload) error
	AddComment(ctx context.Context, p CommentPayload) error
}

// Dispatch sends e to the matching Backend method.
func Dispatch(ctx context.Context, b Backend, e Effect) error {
	switch p := e.Payload.(type) {
	case RecordAddPayload:
		return b.AddRecord(ctx, p)
	case RecordRemovePayload:
		return b.RemoveRecord(ctx, p)
	case SourceLanguagePayload:
		return b.ChangeSourceLanguage(ctx, p)
	case TargetValuePayload:
		return b.ChangeTargetValue(ctx, p)
	case StatusPayload:
		return b.ChangeStatus(ctx, p)
	case CommentPayload:
		return b.AddComment(ctx, p)
	default:
		return fmt.Errorf("unknown effect payload %T for %s", e.Payload, e.Op)
	}
}

// DispatchAll sends e to each backend in order and stops at the first
// failure, so a rejected remote write never reaches the local cache.
func DispatchAll(ctx context.Context, e Effect, backends ...Backend) error {
	for _, b := range backends {
		if err := Dispatch(ctx, b, e); err != nil {
			return err
		}
	}
	return nil
}
