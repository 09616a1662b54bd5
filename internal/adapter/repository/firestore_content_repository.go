package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"conflive/internal/domain/entity"
	"conflive/internal/domain/repository"
	"conflive/pkg/errors"
)

type firestoreContentRepository struct {
	client *firestore.Client
}

func NewFirestoreContentRepository(client *firestore.Client) repository.ContentRepository {
	return &firestoreContentRepository{
		client: client,
	}
}

func (r *firestoreContentRepository) FetchSchedules(ctx context.Context, day int, locale string) ([]entity.Session, error) {
	query := r.client.Collection("sessions").
		Where("locale", "==", locale).
		OrderBy("timeRange", firestore.Asc)
	if day > 0 {
		query = query.Where("day", "==", day)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var sessions []entity.Session
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query sessions", err)
		}

		var session entity.Session
		if err := doc.DataTo(&session); err != nil {
			return nil, errors.Internal("Failed to parse session data", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (r *firestoreContentRepository) FetchSpeakers(ctx context.Context, locale string) ([]entity.Speaker, error) {
	iter := r.client.Collection("speakers").
		Where("locale", "==", locale).
		OrderBy("name", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var speakers []entity.Speaker
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query speakers", err)
		}

		var speaker entity.Speaker
		if err := doc.DataTo(&speaker); err != nil {
			return nil, errors.Internal("Failed to parse speaker data", err)
		}
		speakers = append(speakers, speaker)
	}

	return speakers, nil
}

func (r *firestoreContentRepository) FetchSponsors(ctx context.Context) (*entity.SponsorsData, error) {
	iter := r.client.Collection("sponsors").
		OrderBy("order", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	data := &entity.SponsorsData{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query sponsors", err)
		}

		var sponsor entity.Sponsor
		if err := doc.DataTo(&sponsor); err != nil {
			return nil, errors.Internal("Failed to parse sponsor data", err)
		}

		switch sponsor.Level {
		case "gold":
			data.Gold = append(data.Gold, sponsor)
		case "silver":
			data.Silver = append(data.Silver, sponsor)
		case "bronze":
			data.Bronze = append(data.Bronze, sponsor)
		default:
			data.Community = append(data.Community, sponsor)
		}
	}

	return data, nil
}

func (r *firestoreContentRepository) FetchStaffs(ctx context.Context) ([]entity.Staff, error) {
	iter := r.client.Collection("staffs").
		OrderBy("name", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var staffs []entity.Staff
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query staffs", err)
		}

		var staff entity.Staff
		if err := doc.DataTo(&staff); err != nil {
			return nil, errors.Internal("Failed to parse staff data", err)
		}
		staffs = append(staffs, staff)
	}

	return staffs, nil
}

func (r *firestoreContentRepository) FetchLinks(ctx context.Context) ([]entity.Link, error) {
	iter := r.client.Collection("links").
		OrderBy("order", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var links []entity.Link
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query links", err)
		}

		var link entity.Link
		if err := doc.DataTo(&link); err != nil {
			return nil, errors.Internal("Failed to parse link data", err)
		}
		links = append(links, link)
	}

	return links, nil
}
