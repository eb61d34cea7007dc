package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riftlog/riftlog/internal/domain/match"
	matchmock "github.com/riftlog/riftlog/internal/mocks/domain/match"
)

func TestMatchService_SaveMatch_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	record := match.Record{
		GameTime:        "27:17",
		DurationSeconds: 1637,
		Result:          match.ResultWin,
		Players:         fullRoster(),
	}

	matchRepo.
		On("Save", mock.MatchedBy(func(v context.Context) bool { return v != nil }), mock.AnythingOfType("match.Record")).
		Return(func(_ context.Context, r match.Record) match.Record {
			r.ID = 7
			return r
		}, nil).
		Once()

	saved, err := service.SaveMatch(ctx, record)
	if err != nil {
		t.Fatalf("save match: %v", err)
	}
	if saved.ID != 7 {
		t.Fatalf("unexpected saved id: got=%d want=7", saved.ID)
	}
}

func TestMatchService_Search_RepositoryFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	matchRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v != nil }), match.Filter{Name: "Ana"}).
		Return(nil, errors.New("connection refused")).
		Once()

	_, err := service.Search(ctx, match.Filter{Name: "Ana"})
	if err == nil {
		t.Fatal("expected repository failure to propagate")
	}
}
