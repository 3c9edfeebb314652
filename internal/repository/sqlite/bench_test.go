package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/msomdec/webinars/internal/domain"
)

func fakeWebinar() *domain.Webinar {
	start := gofakeit.FutureDate().UTC()
	return domain.RestoreWebinar(domain.WebinarProps{
		ID:          gofakeit.UUID(),
		OrganizerID: gofakeit.UUID(),
		Title:       gofakeit.LoremIpsumSentence(4),
		StartDate:   start,
		EndDate:     start.Add(time.Hour),
		Seats:       gofakeit.IntRange(domain.MinSeats, domain.MaxSeats),
	})
}

func BenchmarkWebinarRepository_Create(b *testing.B) {
	repo := newTestDB(b).Webinars()
	ctx := context.Background()

	for b.Loop() {
		if err := repo.Create(ctx, fakeWebinar()); err != nil {
			b.Fatalf("Create: %v", err)
		}
	}
}

func BenchmarkWebinarRepository_FindByID(b *testing.B) {
	repo := newTestDB(b).Webinars()
	ctx := context.Background()

	ids := make([]string, 500)
	for i := range ids {
		w := fakeWebinar()
		if err := repo.Create(ctx, w); err != nil {
			b.Fatalf("seed: %v", err)
		}
		ids[i] = w.ID()
	}

	i := 0
	for b.Loop() {
		if _, err := repo.FindByID(ctx, ids[i%len(ids)]); err != nil {
			b.Fatalf("FindByID: %v", err)
		}
		i++
	}
}
