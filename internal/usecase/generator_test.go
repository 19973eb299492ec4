package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

func testCatalog() domain.CatalogSnapshot {
	return domain.CatalogSnapshot{
		Locations: []string{"Fairbanks", "Denali"},
		Activities: []domain.CatalogActivity{
			{ID: "hike-1", Tag: "Hiking", Name: "Angel Rocks Trail", Location: "Fairbanks", Price: 50, MediaRefs: []string{"media/angel-rocks.jpg"}},
			{ID: "hike-2", Tag: "Hiking", Name: "Savage River Loop", Location: "Denali", Price: 80},
			{ID: "raft-1", Tag: "Rafting", Name: "Nenana Canyon Run", Location: "Denali", Price: 120},
			{ID: "fish-1", Tag: "Fishing", Name: "Chena River Fishing", Location: "Fairbanks", Price: 60},
		},
		Lodging: []domain.CatalogLodging{
			{ID: "cabin-1", Tag: "Cabin", Name: "Chena Cabin", Location: "Fairbanks", NightlyPrice: 200, Capacity: domain.Party{Adults: 4, Children: 2, Infants: 1}},
			{ID: "lodge-1", Tag: "Lodge", Name: "Denali Lodge", Location: "Denali", NightlyPrice: 300, Capacity: domain.Party{Adults: 2}},
		},
		Transportation: []domain.CatalogTransportation{
			{ID: "car", Tag: "Rental Car", Price: 40},
			{ID: "bus", Tag: "Bus", Price: 20},
		},
	}
}

func criteriaFor(t *testing.T, req domain.SearchRequest) domain.SearchCriteria {
	t.Helper()
	criteria, err := domain.NormalizeCriteria(req)
	require.NoError(t, err)
	return criteria
}

func TestGenerateFromSnapshot_Deterministic(t *testing.T) {
	criteria := criteriaFor(t, domain.SearchRequest{Activities: []string{"Hiking"}, Adults: intPtr(2)})

	first, err := GenerateFromSnapshot(testCatalog(), criteria, 5)
	require.NoError(t, err)
	second, err := GenerateFromSnapshot(testCatalog(), criteria, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateFromSnapshot_CandidateShape(t *testing.T) {
	criteria := criteriaFor(t, domain.SearchRequest{Adults: intPtr(2)})

	generated, err := GenerateFromSnapshot(testCatalog(), criteria, 10)
	require.NoError(t, err)
	require.Len(t, generated, 10)

	seen := make(map[string]bool)
	for _, c := range generated {
		assert.True(t, strings.HasPrefix(c.ID, "gen-"), c.ID)
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true

		assert.Equal(t, domain.OriginGenerated, c.Origin)
		assert.Equal(t, domain.GeneratedScore, c.Score)
		assert.Equal(t, []string{domain.GeneratedTag}, c.Tags)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Locations)
		assert.NotEmpty(t, c.Activities)
		assert.LessOrEqual(t, len(c.Activities), domain.MaxActivitiesPerItinerary)
		assert.Len(t, c.Lodging, 1)
		assert.GreaterOrEqual(t, c.DurationDays, 1)
		assert.Positive(t, c.Price)
	}
}

func TestGenerateFromSnapshot_RespectsCriteria(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.SearchRequest
		needed   int
		wantErr  error
		validate func(t *testing.T, c domain.Candidate)
	}{
		{
			name:   "location restricts activities and lodging",
			req:    domain.SearchRequest{Locations: []string{"Fairbanks"}},
			needed: 4,
			validate: func(t *testing.T, c domain.Candidate) {
				assert.Equal(t, []string{"fairbanks"}, c.Locations)
				assert.Equal(t, []string{"cabin"}, c.Lodging)
				for _, a := range c.Activities {
					assert.Contains(t, []string{"fishing", "hiking"}, a)
				}
			},
		},
		{
			name:   "activity tag is matched case-insensitively",
			req:    domain.SearchRequest{Activities: []string{"RAFTING"}},
			needed: 2,
			validate: func(t *testing.T, c domain.Candidate) {
				assert.Equal(t, []string{"rafting"}, c.Activities)
			},
		},
		{
			name:   "lodging must fit the party",
			req:    domain.SearchRequest{Adults: intPtr(3)},
			needed: 3,
			validate: func(t *testing.T, c domain.Candidate) {
				assert.Equal(t, []string{"cabin"}, c.Lodging)
			},
		},
		{
			name:   "requested transportation is used",
			req:    domain.SearchRequest{Transportation: "rental car"},
			needed: 3,
			validate: func(t *testing.T, c domain.Candidate) {
				assert.Equal(t, "rental car", c.Transportation)
			},
		},
		{
			name:    "unknown location exhausts the catalog",
			req:     domain.SearchRequest{Locations: []string{"Juneau"}},
			needed:  1,
			wantErr: domain.ErrGenerationExhausted,
		},
		{
			name:    "unknown activity exhausts the catalog",
			req:     domain.SearchRequest{Activities: []string{"Skiing"}},
			needed:  1,
			wantErr: domain.ErrGenerationExhausted,
		},
		{
			name:    "party larger than every lodging exhausts the catalog",
			req:     domain.SearchRequest{Adults: intPtr(5)},
			needed:  1,
			wantErr: domain.ErrGenerationExhausted,
		},
		{
			name:    "missing transportation exhausts the catalog",
			req:     domain.SearchRequest{Transportation: "Floatplane"},
			needed:  1,
			wantErr: domain.ErrGenerationExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generated, err := GenerateFromSnapshot(testCatalog(), criteriaFor(t, tt.req), tt.needed)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Empty(t, generated)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, generated)
			assert.LessOrEqual(t, len(generated), tt.needed)
			for _, c := range generated {
				tt.validate(t, c)
			}
		})
	}
}

func TestGenerateFromSnapshot_Pricing(t *testing.T) {
	criteria := criteriaFor(t, domain.SearchRequest{
		Locations:      []string{"Fairbanks"},
		Activities:     []string{"Fishing"},
		Arrival:        "2026-07-01",
		Departure:      "2026-07-03",
		Adults:         intPtr(2),
		Transportation: "Bus",
	})

	generated, err := GenerateFromSnapshot(testCatalog(), criteria, 1)
	require.NoError(t, err)
	require.Len(t, generated, 1)

	// 60 activity + 200 x 2 nights / 2 travelers + 20 bus
	assert.Equal(t, 280.0, generated[0].Price)
	assert.Equal(t, 2, generated[0].DurationDays)
	assert.Equal(t, "bus", generated[0].Transportation)
}

func TestGenerateFromSnapshot_Pace(t *testing.T) {
	tests := []struct {
		pace string
		want int
	}{
		{pace: "relaxed", want: 1},
		{pace: "moderate", want: 2},
		{pace: "adventure", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.pace, func(t *testing.T) {
			criteria := criteriaFor(t, domain.SearchRequest{
				Locations: []string{"Denali"},
				Pace:      tt.pace,
			})

			generated, err := GenerateFromSnapshot(testCatalog(), criteria, 1)
			require.NoError(t, err)
			require.Len(t, generated, 1)

			// Denali offers two activities, so the first group is capped at two.
			want := tt.want
			if want > 2 {
				want = 2
			}
			assert.Len(t, generated[0].Activities, want)
		})
	}
}

func TestGenerateFromSnapshot_NoTransportationInCatalog(t *testing.T) {
	snapshot := testCatalog()
	snapshot.Transportation = nil

	generated, err := GenerateFromSnapshot(snapshot, criteriaFor(t, domain.SearchRequest{}), 2)
	require.NoError(t, err)
	require.Len(t, generated, 2)
	for _, c := range generated {
		assert.Empty(t, c.Transportation)
	}
}

func TestGenerateFromSnapshot_EdgeCases(t *testing.T) {
	criteria := criteriaFor(t, domain.SearchRequest{})

	t.Run("nothing needed", func(t *testing.T) {
		generated, err := GenerateFromSnapshot(testCatalog(), criteria, 0)
		assert.NoError(t, err)
		assert.Nil(t, generated)
	})

	t.Run("empty catalog", func(t *testing.T) {
		generated, err := GenerateFromSnapshot(domain.CatalogSnapshot{}, criteria, 3)
		assert.ErrorIs(t, err, domain.ErrGenerationExhausted)
		assert.Nil(t, generated)
	})

	t.Run("fewer combinations than needed", func(t *testing.T) {
		snapshot := domain.CatalogSnapshot{
			Activities: []domain.CatalogActivity{{ID: "a1", Tag: "hiking", Price: 10}},
			Lodging:    []domain.CatalogLodging{{ID: "l1", Tag: "tent", NightlyPrice: 5, Capacity: domain.Party{Adults: 2}}},
		}
		generated, err := GenerateFromSnapshot(snapshot, criteria, 3)
		require.NoError(t, err)
		assert.Len(t, generated, 1)
		assert.Equal(t, []string{domain.FlexibleLocation}, generated[0].Locations)
	})
}

func TestGenerator_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	criteria := criteriaFor(t, domain.SearchRequest{Activities: []string{"Hiking"}})

	t.Run("reads one snapshot", func(t *testing.T) {
		catalog := domain.NewMockCatalogReader(ctrl)
		catalog.EXPECT().Snapshot(gomock.Any()).Return(testCatalog(), nil).Times(1)

		generated, err := NewGenerator(catalog).Generate(context.Background(), criteria, 2)
		require.NoError(t, err)
		assert.Len(t, generated, 2)
	})

	t.Run("does not read the catalog when nothing is needed", func(t *testing.T) {
		catalog := domain.NewMockCatalogReader(ctrl)
		catalog.EXPECT().Snapshot(gomock.Any()).Times(0)

		generated, err := NewGenerator(catalog).Generate(context.Background(), criteria, 0)
		assert.NoError(t, err)
		assert.Nil(t, generated)
	})

	t.Run("wraps snapshot errors", func(t *testing.T) {
		storeErr := domain.WrapStoreError("snapshot", errors.New("disk I/O error"))
		catalog := domain.NewMockCatalogReader(ctrl)
		catalog.EXPECT().Snapshot(gomock.Any()).Return(domain.CatalogSnapshot{}, storeErr)

		generated, err := NewGenerator(catalog).Generate(context.Background(), criteria, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrStore)
		assert.Contains(t, err.Error(), "read catalog snapshot")
		assert.Nil(t, generated)
	})

	t.Run("honors context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()

		catalog := domain.NewMockCatalogReader(ctrl)
		catalog.EXPECT().Snapshot(gomock.Any()).DoAndReturn(
			func(ctx context.Context) (domain.CatalogSnapshot, error) {
				<-ctx.Done()
				return domain.CatalogSnapshot{}, ctx.Err()
			},
		)

		_, err := NewGenerator(catalog).Generate(ctx, criteria, 1)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
