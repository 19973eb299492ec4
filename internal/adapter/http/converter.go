package http

import (
	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// ToDomainRequest converts a SearchItinerariesRequest to the raw domain
// request. Normalization happens in the use case.
func ToDomainRequest(req *SearchItinerariesRequest) domain.SearchRequest {
	return domain.SearchRequest{
		Locations:      req.Locations,
		Arrival:        req.ArrivalDatetime,
		Departure:      req.DepartureDatetime,
		Adults:         req.Adults,
		Children:       req.Children,
		Infants:        req.Infants,
		Activities:     req.Activities,
		Lodging:        req.Lodging,
		Transportation: req.Transportation,
		Pace:           req.TripPace,
	}
}
