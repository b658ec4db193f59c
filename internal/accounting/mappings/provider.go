package mappings

import (
	"context"
	"errors"
)

// ErrMappingNotFound indicates no mapping exists for a document kind.
var ErrMappingNotFound = errors.New("mappings: no account mapping for document kind")

// Provider supplies the role-to-account mapping for a document kind.
type Provider interface {
	Mapping(ctx context.Context, kind DocumentKind) (Mapping, error)
}

// Static is a fixed in-memory Provider, handed over at construction.
type Static map[DocumentKind]Mapping

func (s Static) Mapping(_ context.Context, kind DocumentKind) (Mapping, error) {
	m, ok := s[kind]
	if !ok {
		return nil, ErrMappingNotFound
	}
	return m, nil
}
