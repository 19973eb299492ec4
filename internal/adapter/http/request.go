// Package http provides the HTTP handler layer for the itinerary search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"strings"

	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/timeutil"
)

// Request shape limits.
const (
	maxListItems = 25
	maxTagLength = 64
	maxPartySize = 50
)

// SearchItinerariesRequest represents the request body for itinerary search.
type SearchItinerariesRequest struct {
	// Locations are city or region names (e.g., ["Fairbanks", "Denali"])
	Locations []string `json:"locations,omitempty" example:"Fairbanks"`

	// ArrivalDatetime is the trip start in YYYY-MM-DD or RFC3339 format
	ArrivalDatetime string `json:"arrival_datetime,omitempty" example:"2026-07-01"`

	// DepartureDatetime is the trip end in YYYY-MM-DD or RFC3339 format
	DepartureDatetime string `json:"departure_datetime,omitempty" example:"2026-07-05"`

	// Adults defaults to 1 when omitted
	Adults *int `json:"adults,omitempty" example:"2"`

	Children *int `json:"children,omitempty" example:"0"`
	Infants  *int `json:"infants,omitempty" example:"0"`

	// Activities are activity tags (e.g., ["Hiking", "Fishing"])
	Activities []string `json:"activities,omitempty" example:"Hiking"`

	// Lodging are lodging tags (e.g., ["Cabin"])
	Lodging []string `json:"lodging,omitempty" example:"Cabin"`

	// Transportation is a preferred transportation tag (e.g., "Rental Car")
	Transportation string `json:"transportation,omitempty" example:"Rental Car"`

	// TripPace is one of relaxed, moderate, adventure (optional)
	TripPace string `json:"trip_pace,omitempty" example:"moderate"`
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate checks the request shape and collects every problem found.
// Semantic rules (party minimums, date ordering, pace values) are enforced
// by domain.NormalizeCriteria.
func (r *SearchItinerariesRequest) Validate() error {
	errs := &ValidationErrors{}

	validateTagList(errs, "locations", r.Locations)
	validateTagList(errs, "activities", r.Activities)
	validateTagList(errs, "lodging", r.Lodging)

	if len(r.Transportation) > maxTagLength {
		errs.Add("transportation", fmt.Sprintf("transportation must be at most %d characters", maxTagLength))
	}

	r.validateDate(errs, "arrival_datetime", r.ArrivalDatetime)
	r.validateDate(errs, "departure_datetime", r.DepartureDatetime)
	r.validateParty(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateTagList(errs *ValidationErrors, field string, values []string) {
	if len(values) > maxListItems {
		errs.Add(field, fmt.Sprintf("%s cannot contain more than %d entries", field, maxListItems))
		return
	}
	for i, v := range values {
		name := fmt.Sprintf("%s[%d]", field, i)
		if strings.TrimSpace(v) == "" {
			errs.Add(name, "value must not be blank")
			continue
		}
		if len(v) > maxTagLength {
			errs.Add(name, fmt.Sprintf("value must be at most %d characters", maxTagLength))
		}
	}
}

func (r *SearchItinerariesRequest) validateDate(errs *ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	if _, err := timeutil.ParseDate(value); err != nil {
		errs.Add(field, field+" must be in YYYY-MM-DD or RFC3339 format")
	}
}

func (r *SearchItinerariesRequest) validateParty(errs *ValidationErrors) {
	total := 0
	for _, n := range []*int{r.Adults, r.Children, r.Infants} {
		if n != nil && *n > 0 {
			total += *n
		}
	}
	if total > maxPartySize {
		errs.Add("party", fmt.Sprintf("party cannot exceed %d travelers", maxPartySize))
	}
}
