package domain

import (
	"encoding/json"

	"github.com/x-xyz/artgallery/base/ctx"
)

// Metadata is the raw JSON document published for a token
type Metadata struct {
	json.RawMessage
}

type MetadataAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// MetadataDocument is the ERC721 style document pinned for a new artwork
type MetadataDocument struct {
	Name        string              `json:"name,omitempty"`
	Description string              `json:"description,omitempty"`
	Image       string              `json:"image,omitempty"`
	Attributes  []MetadataAttribute `json:"attributes,omitempty"`
	CreatedAt   string              `json:"created_at,omitempty"`
}

// MetadataSummary is what a token page shows from its document
type MetadataSummary struct {
	Name  string
	Image string
}

// Summary reads name and image from m. Only a document which is not a JSON
// object is ErrInvalidJsonFormat, a field of an unexpected type reads as empty.
func (m *Metadata) Summary() (*MetadataSummary, error) {
	if m == nil || len(m.RawMessage) == 0 {
		return nil, ErrInvalidJsonFormat
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(m.RawMessage, &fields); err != nil || fields == nil {
		return nil, ErrInvalidJsonFormat
	}
	return &MetadataSummary{
		Name:  stringField(fields, "name"),
		Image: stringField(fields, "image"),
	}, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	var s string
	if err := json.Unmarshal(fields[key], &s); err != nil {
		return ""
	}
	return s
}

type MetadataUseCase interface {
	// GetFromUri fetches the document a token uri points to
	GetFromUri(ctx.Ctx, string) (*Metadata, error)
}

// MetadataCacheRepo keeps fetched documents keyed by token id, Get returns ErrNotFound on miss
type MetadataCacheRepo interface {
	Get(ctx.Ctx, TokenId) (*Metadata, error)
	Put(ctx.Ctx, TokenId, *Metadata) error
}
