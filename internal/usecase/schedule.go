package usecase

import (
	"fmt"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// PlanDays lays out a generated trip of the given number of days.
//
// Day 1 opens with arrival and check-in at domain.ArrivalTime, the last day
// closes with check-out at domain.DepartureTime. Activities are dealt across
// the days in order, activity k landing on day k mod days, and each day's
// activities start at 10:00 spaced two hours apart, at most
// domain.MaxSlotsPerDay per day.
func PlanDays(days int, location string, activities []domain.CatalogActivity) []domain.DayPlan {
	if days < 1 {
		days = 1
	}

	plans := make([]domain.DayPlan, days)
	for i := range plans {
		plans[i] = domain.DayPlan{Day: i + 1, Items: []domain.ScheduleItem{}}
	}

	place := titleCase(location)
	plans[0].Items = append(plans[0].Items, domain.ScheduleItem{
		Time:     domain.ArrivalTime,
		Kind:     domain.ScheduleTransportation,
		Name:     domain.ArrivalName,
		Location: place,
	})

	slots := make([]int, days)
	for k, a := range activities {
		day := k % days
		if slots[day] == domain.MaxSlotsPerDay {
			continue
		}
		plans[day].Items = append(plans[day].Items, domain.ScheduleItem{
			Time:       slotTime(slots[day]),
			Kind:       domain.ScheduleActivity,
			Name:       activityName(a),
			ActivityID: a.ID,
			Location:   titleCase(a.Location),
		})
		slots[day]++
	}

	last := &plans[days-1]
	last.Items = append(last.Items, domain.ScheduleItem{
		Time:     domain.DepartureTime,
		Kind:     domain.ScheduleTransportation,
		Name:     domain.DepartureName,
		Location: place,
	})
	return plans
}

func slotTime(slot int) string {
	return fmt.Sprintf("%02d:00", domain.FirstSlotHour+slot*domain.SlotGapHours)
}

func activityName(a domain.CatalogActivity) string {
	if a.Name != "" {
		return a.Name
	}
	return titleCase(a.Tag)
}
