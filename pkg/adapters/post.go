package adapters

import (
	"github.com/de-tools/tenant-atlas/pkg/models/api"
	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/de-tools/tenant-atlas/pkg/models/store"
)

func MapStorePostToDomain(p store.Post) domain.Post {
	return domain.Post{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
	}
}

func MapPostDomainToApi(p domain.Post) api.Post {
	return api.Post{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
	}
}
