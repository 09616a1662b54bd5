package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conflive/internal/domain/entity"
)

type fakeContentRepository struct {
	scheduleCalls int
	speakerCalls  int
	sessions      []entity.Session
	speakers      []entity.Speaker
}

func (f *fakeContentRepository) FetchSchedules(ctx context.Context, day int, locale string) ([]entity.Session, error) {
	f.scheduleCalls++
	return f.sessions, nil
}

func (f *fakeContentRepository) FetchSpeakers(ctx context.Context, locale string) ([]entity.Speaker, error) {
	f.speakerCalls++
	return f.speakers, nil
}

func (f *fakeContentRepository) FetchSponsors(ctx context.Context) (*entity.SponsorsData, error) {
	return &entity.SponsorsData{}, nil
}

func (f *fakeContentRepository) FetchStaffs(ctx context.Context) ([]entity.Staff, error) {
	return nil, nil
}

func (f *fakeContentRepository) FetchLinks(ctx context.Context) ([]entity.Link, error) {
	return nil, nil
}

func TestGetSchedulesCachesPerDayAndLocale(t *testing.T) {
	repo := &fakeContentRepository{
		sessions: []entity.Session{{ID: "s1", Title: "Opening", Day: 1}},
	}
	uc := NewContentUseCase(repo)
	ctx := context.Background()

	first, err := uc.GetSchedules(ctx, 1, "en")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Second identical call is served from cache.
	_, err = uc.GetSchedules(ctx, 1, "en")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.scheduleCalls)

	// A different day or locale misses the cache.
	_, err = uc.GetSchedules(ctx, 2, "en")
	require.NoError(t, err)
	_, err = uc.GetSchedules(ctx, 1, "zh-TW")
	require.NoError(t, err)
	assert.Equal(t, 3, repo.scheduleCalls)
}

func TestGetSpeakersCaches(t *testing.T) {
	repo := &fakeContentRepository{
		speakers: []entity.Speaker{{ID: "sp1", Name: "Ada"}},
	}
	uc := NewContentUseCase(repo)
	ctx := context.Background()

	_, err := uc.GetSpeakers(ctx, "en")
	require.NoError(t, err)
	_, err = uc.GetSpeakers(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.speakerCalls)
}
