package dto

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"seniorcare-lead-api/internal/domain"
)

// Optional is a JSON member that knows whether it was sent at all: an
// omitted member leaves Set false, an explicit null sets it with a nil Value.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	if string(data) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// GridRequest carries the paging and search query of every grid endpoint
type GridRequest struct {
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"perPage" binding:"omitempty,min=1,max=200"`
	Search  string `form:"search" binding:"max=100"`
}

// GridResponse is one page of a grid
type GridResponse[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
}

// NewGridResponse builds a GridResponse, never returning a nil item list.
func NewGridResponse[T any](items []T, total int64, page, perPage int) GridResponse[T] {
	if items == nil {
		items = []T{}
	}
	return GridResponse[T]{Items: items, Total: total, Page: page, PerPage: perPage}
}

// IDsRequest lists the ids of a bulk operation
type IDsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// RelatedInfo reports how many rows of each dependent table reference one entity
type RelatedInfo struct {
	ID      uuid.UUID        `json:"id"`
	Related map[string]int64 `json:"related"`
	Total   int64            `json:"total"`
}

// PhoneRequest is one entry of a submitted phone list
type PhoneRequest struct {
	Number     string           `json:"number" binding:"required,max=50"`
	Type       domain.PhoneType `json:"type" binding:"required,oneof=HOME MOBILE WORK OFFICE EMERGENCY FAX"`
	Extension  string           `json:"extension" binding:"max=20"`
	Primary    bool             `json:"primary"`
	SMSEnabled bool             `json:"smsEnabled"`
}

// Fields converts the request to the stored phone columns.
func (p PhoneRequest) Fields() domain.PhoneFields {
	return domain.PhoneFields{
		Number:     strings.TrimSpace(p.Number),
		Type:       p.Type,
		Extension:  strings.TrimSpace(p.Extension),
		Primary:    p.Primary,
		SMSEnabled: p.SMSEnabled,
	}
}

// PrimaryCount returns how many phones are marked primary.
func PrimaryCount(phones []PhoneRequest) int {
	n := 0
	for _, p := range phones {
		if p.Primary {
			n++
		}
	}
	return n
}

// ExportResult is a rendered grid export. URL is set when the file was
// uploaded to object storage; Body otherwise.
type ExportResult struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	URL         string `json:"url,omitempty"`
	Key         string `json:"key,omitempty"`
	Rows        int    `json:"rows"`
	Body        []byte `json:"-"`
}

// ExportRequest selects where a grid export goes. An empty destination
// uploads when object storage is configured and streams otherwise.
type ExportRequest struct {
	Search      string `form:"search" binding:"max=100"`
	Destination string `form:"destination" binding:"omitempty,oneof=inline s3"`
}
