package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"conflive/internal/domain/entity"
	"conflive/internal/domain/repository"
)

// contentCacheTTL controls how long a fetched content payload is reused
// before the repository is consulted again. Conference content changes rarely.
const contentCacheTTL = 5 * time.Minute

type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
}

type ContentUseCase struct {
	contentRepo repository.ContentRepository

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewContentUseCase(contentRepo repository.ContentRepository) *ContentUseCase {
	return &ContentUseCase{
		contentRepo: contentRepo,
		cache:       make(map[string]cacheEntry),
	}
}

func (uc *ContentUseCase) cached(key string) (interface{}, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	entry, ok := uc.cache[key]
	if !ok || time.Since(entry.fetchedAt) > contentCacheTTL {
		return nil, false
	}
	return entry.value, true
}

func (uc *ContentUseCase) store(key string, value interface{}) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cache[key] = cacheEntry{value: value, fetchedAt: time.Now()}
}

func (uc *ContentUseCase) GetSchedules(ctx context.Context, day int, locale string) ([]entity.Session, error) {
	key := fmt.Sprintf("schedules:%d:%s", day, locale)
	if v, ok := uc.cached(key); ok {
		return v.([]entity.Session), nil
	}

	sessions, err := uc.contentRepo.FetchSchedules(ctx, day, locale)
	if err != nil {
		return nil, err
	}
	uc.store(key, sessions)
	return sessions, nil
}

func (uc *ContentUseCase) GetSpeakers(ctx context.Context, locale string) ([]entity.Speaker, error) {
	key := "speakers:" + locale
	if v, ok := uc.cached(key); ok {
		return v.([]entity.Speaker), nil
	}

	speakers, err := uc.contentRepo.FetchSpeakers(ctx, locale)
	if err != nil {
		return nil, err
	}
	uc.store(key, speakers)
	return speakers, nil
}

func (uc *ContentUseCase) GetSponsors(ctx context.Context) (*entity.SponsorsData, error) {
	if v, ok := uc.cached("sponsors"); ok {
		return v.(*entity.SponsorsData), nil
	}

	sponsors, err := uc.contentRepo.FetchSponsors(ctx)
	if err != nil {
		return nil, err
	}
	uc.store("sponsors", sponsors)
	return sponsors, nil
}

func (uc *ContentUseCase) GetStaffs(ctx context.Context) ([]entity.Staff, error) {
	if v, ok := uc.cached("staffs"); ok {
		return v.([]entity.Staff), nil
	}

	staffs, err := uc.contentRepo.FetchStaffs(ctx)
	if err != nil {
		return nil, err
	}
	uc.store("staffs", staffs)
	return staffs, nil
}

func (uc *ContentUseCase) GetLinks(ctx context.Context) ([]entity.Link, error) {
	if v, ok := uc.cached("links"); ok {
		return v.([]entity.Link), nil
	}

	links, err := uc.contentRepo.FetchLinks(ctx)
	if err != nil {
		return nil, err
	}
	uc.store("links", links)
	return links, nil
}
