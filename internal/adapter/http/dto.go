package http

import (
	"github.com/tripfinder/itinerary-search-service/internal/domain"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/timeutil"
)

// SearchResponseDTO is the data transfer object for search responses.
// It matches the expected API output format with snake_case fields.
type SearchResponseDTO struct {
	SearchID       string            `json:"search_id"`
	SearchCriteria SearchCriteriaDTO `json:"search_criteria"`
	Metadata       MetadataDTO       `json:"metadata"`
	Itineraries    []ItineraryDTO    `json:"itineraries"`
}

// SearchCriteriaDTO echoes the normalized criteria.
type SearchCriteriaDTO struct {
	Locations         []string `json:"locations"`
	ArrivalDatetime   string   `json:"arrival_datetime,omitempty"`
	DepartureDatetime string   `json:"departure_datetime,omitempty"`
	Adults            int      `json:"adults"`
	Children          int      `json:"children"`
	Infants           int      `json:"infants"`
	Activities        []string `json:"activities"`
	Lodging           []string `json:"lodging"`
	Transportation    string   `json:"transportation,omitempty"`
	TripPace          string   `json:"trip_pace,omitempty"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	TotalResults        int    `json:"total_results"`
	IndexedCount        int    `json:"indexed_count"`
	StoredCount         int    `json:"stored_count"`
	GeneratedCount      int    `json:"generated_count"`
	IndexStatus         string `json:"index_status"`
	IndexAttempts       int    `json:"index_attempts"`
	FallbackUsed        bool   `json:"fallback_used"`
	GenerationExhausted bool   `json:"generation_exhausted"`
	CatalogUnavailable  bool   `json:"catalog_unavailable"`
	SearchTimeMs        int64  `json:"search_time_ms"`
}

// ItineraryDTO is one ranked recommendation.
type ItineraryDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Locations      []string `json:"locations"`
	Activities     []string `json:"activities"`
	Lodging        []string `json:"lodging"`
	Transportation string   `json:"transportation,omitempty"`
	PersonCost     float64  `json:"person_cost"`
	LengthDays     int      `json:"length_days"`
	Images         []string `json:"images"`
	Tags           []string `json:"tags,omitempty"`
	Origin         string   `json:"origin"`
	MatchScore     float64  `json:"match_score"`
	Days           []DayDTO `json:"days,omitempty"`
}

// DayDTO is one day of a generated itinerary's plan.
type DayDTO struct {
	Day   int               `json:"day"`
	Items []ScheduleItemDTO `json:"items"`
}

// ScheduleItemDTO is one timed entry of a day plan.
type ScheduleItemDTO struct {
	Time       string `json:"time"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	ActivityID string `json:"activity_id,omitempty"`
	Location   string `json:"location,omitempty"`
}

// ToSearchResponseDTO converts a domain SearchResponse to a SearchResponseDTO.
func ToSearchResponseDTO(resp *domain.SearchResponse) *SearchResponseDTO {
	if resp == nil {
		return nil
	}

	criteria := resp.Criteria
	dto := &SearchResponseDTO{
		SearchID: resp.SearchID,
		SearchCriteria: SearchCriteriaDTO{
			Locations:      nonNil(criteria.Locations),
			Adults:         criteria.Party.Adults,
			Children:       criteria.Party.Children,
			Infants:        criteria.Party.Infants,
			Activities:     nonNil(criteria.Activities),
			Lodging:        nonNil(criteria.Lodging),
			Transportation: criteria.Transportation,
			TripPace:       string(criteria.Pace),
		},
		Metadata: MetadataDTO{
			TotalResults:        resp.Metadata.TotalResults,
			IndexedCount:        resp.Metadata.IndexedCount,
			StoredCount:         resp.Metadata.StoredCount,
			GeneratedCount:      resp.Metadata.GeneratedCount,
			IndexStatus:         string(resp.Metadata.IndexStatus),
			IndexAttempts:       resp.Metadata.IndexAttempts,
			FallbackUsed:        resp.Metadata.FallbackUsed,
			GenerationExhausted: resp.Metadata.GenerationExhausted,
			CatalogUnavailable:  resp.Metadata.CatalogUnavailable,
			SearchTimeMs:        resp.Metadata.SearchTimeMs,
		},
		Itineraries: make([]ItineraryDTO, len(resp.Itineraries)),
	}

	if criteria.DateRange != nil {
		dto.SearchCriteria.ArrivalDatetime = timeutil.FormatDate(criteria.DateRange.Arrival)
		dto.SearchCriteria.DepartureDatetime = timeutil.FormatDate(criteria.DateRange.Departure)
	}

	for i := range resp.Itineraries {
		dto.Itineraries[i] = ToItineraryDTO(&resp.Itineraries[i])
	}

	return dto
}

// ToItineraryDTO converts a domain Candidate to an ItineraryDTO.
func ToItineraryDTO(c *domain.Candidate) ItineraryDTO {
	return ItineraryDTO{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		Locations:      nonNil(c.Locations),
		Activities:     nonNil(c.Activities),
		Lodging:        nonNil(c.Lodging),
		Transportation: c.Transportation,
		PersonCost:     c.Price,
		LengthDays:     c.DurationDays,
		Images:         nonNil(c.MediaRefs),
		Tags:           c.Tags,
		Origin:         string(c.Origin),
		MatchScore:     c.Score,
		Days:           toDayDTOs(c.Days),
	}
}

func toDayDTOs(days []domain.DayPlan) []DayDTO {
	if len(days) == 0 {
		return nil
	}
	out := make([]DayDTO, len(days))
	for i, d := range days {
		items := make([]ScheduleItemDTO, len(d.Items))
		for j, item := range d.Items {
			items[j] = ScheduleItemDTO{
				Time:       item.Time,
				Kind:       string(item.Kind),
				Name:       item.Name,
				ActivityID: item.ActivityID,
				Location:   item.Location,
			}
		}
		out[i] = DayDTO{Day: d.Day, Items: items}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
