package repository

import (
	"context"

	"conflive/internal/domain/entity"
)

// ContentRepository reads conference content. Implementations localize
// text fields to the given locale where localized variants exist.
type ContentRepository interface {
	FetchSchedules(ctx context.Context, day int, locale string) ([]entity.Session, error)
	FetchSpeakers(ctx context.Context, locale string) ([]entity.Speaker, error)
	FetchSponsors(ctx context.Context) (*entity.SponsorsData, error)
	FetchStaffs(ctx context.Context) ([]entity.Staff, error)
	FetchLinks(ctx context.Context) ([]entity.Link, error)
}
