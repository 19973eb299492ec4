package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

func itemTimes(plan domain.DayPlan) []string {
	out := make([]string, len(plan.Items))
	for i, item := range plan.Items {
		out[i] = item.Time
	}
	return out
}

func TestPlanDays(t *testing.T) {
	hike := domain.CatalogActivity{ID: "hike-1", Tag: "hiking", Name: "Angel Rocks Trail", Location: "fairbanks"}
	fish := domain.CatalogActivity{ID: "fish-1", Tag: "fishing", Location: "fairbanks"}
	soak := domain.CatalogActivity{ID: "soak-1", Tag: "hot springs", Name: "Chena Hot Springs"}

	tests := []struct {
		name       string
		days       int
		activities []domain.CatalogActivity
		wantTimes  [][]string
	}{
		{
			name:       "single day holds arrival, activities and departure",
			days:       1,
			activities: []domain.CatalogActivity{hike, fish, soak},
			wantTimes:  [][]string{{"09:00", "10:00", "12:00", "14:00", "17:00"}},
		},
		{
			name:       "activities are dealt across days",
			days:       3,
			activities: []domain.CatalogActivity{hike, fish, soak},
			wantTimes:  [][]string{{"09:00", "10:00"}, {"10:00"}, {"10:00", "17:00"}},
		},
		{
			name:       "longer trips leave free days",
			days:       4,
			activities: []domain.CatalogActivity{hike, fish},
			wantTimes:  [][]string{{"09:00", "10:00"}, {"10:00"}, {}, {"17:00"}},
		},
		{
			name:      "zero days is one day",
			days:      0,
			wantTimes: [][]string{{"09:00", "17:00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := PlanDays(tt.days, "fairbanks", tt.activities)

			require.Len(t, plans, len(tt.wantTimes))
			for i, plan := range plans {
				assert.Equal(t, i+1, plan.Day)
				assert.Equal(t, tt.wantTimes[i], itemTimes(plan), "day %d", plan.Day)
			}
		})
	}
}

func TestPlanDays_ItemContent(t *testing.T) {
	activities := []domain.CatalogActivity{
		{ID: "hike-1", Tag: "hiking", Name: "Angel Rocks Trail", Location: "fairbanks"},
		{ID: "fish-1", Tag: "fishing"},
	}

	plans := PlanDays(2, "fairbanks", activities)
	require.Len(t, plans, 2)

	arrival := plans[0].Items[0]
	assert.Equal(t, domain.ScheduleTransportation, arrival.Kind)
	assert.Equal(t, domain.ArrivalName, arrival.Name)
	assert.Equal(t, "Fairbanks", arrival.Location)
	assert.Empty(t, arrival.ActivityID)

	hike := plans[0].Items[1]
	assert.Equal(t, domain.ScheduleActivity, hike.Kind)
	assert.Equal(t, "hike-1", hike.ActivityID)
	assert.Equal(t, "Angel Rocks Trail", hike.Name)

	fish := plans[1].Items[0]
	assert.Equal(t, "Fishing", fish.Name, "unnamed activities fall back to the tag")
	assert.Empty(t, fish.Location)

	departure := plans[1].Items[len(plans[1].Items)-1]
	assert.Equal(t, domain.DepartureTime, departure.Time)
	assert.Equal(t, domain.DepartureName, departure.Name)
}

func TestGenerateFromSnapshot_DayPlans(t *testing.T) {
	tests := []struct {
		name string
		req  domain.SearchRequest
	}{
		{name: "nights from activities", req: domain.SearchRequest{Locations: []string{"Fairbanks"}, Adults: intPtr(2)}},
		{name: "nights from dates", req: domain.SearchRequest{Activities: []string{"Hiking"}, Arrival: "2026-07-01", Departure: "2026-07-05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generated, err := GenerateFromSnapshot(testCatalog(), criteriaFor(t, tt.req), 3)
			require.NoError(t, err)
			require.NotEmpty(t, generated)

			for _, c := range generated {
				require.Len(t, c.Days, c.DurationDays, c.ID)
				assert.Equal(t, domain.ArrivalName, c.Days[0].Items[0].Name)
				lastDay := c.Days[len(c.Days)-1].Items
				assert.Equal(t, domain.DepartureName, lastDay[len(lastDay)-1].Name)

				scheduled := 0
				for _, day := range c.Days {
					for _, item := range day.Items {
						if item.Kind == domain.ScheduleActivity {
							scheduled++
						}
					}
				}
				assert.GreaterOrEqual(t, scheduled, len(c.Activities), "every activity tag is scheduled")
				assert.LessOrEqual(t, scheduled, domain.MaxActivitiesPerItinerary)
			}
		})
	}
}
