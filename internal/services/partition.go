package services

import (
	"sort"

	"travel-itinerary-service/internal/domain"
)

// Itinerary items bucketed by 1-based day number, original order
// preserved within each bucket.
type DayGroups map[int][]*domain.ItineraryItem

// PartitionDays groups a flat ordered itinerary into per-day buckets.
//
// Explicit day tags win. Otherwise the first item opens day 1 and later
// items roll to the next day when their hour drops below the previous
// item's hour into the early morning (hour < 12). Ties never roll over.
// The heuristic can misclassify a schedule with more than one rollover
// per day; it is kept as observed in production rather than corrected.
//
// Resolutions are cached on the items, so partitioning already-resolved
// items is idempotent.
func PartitionDays(items []*domain.ItineraryItem) DayGroups {
	groups := make(DayGroups)

	if len(items) == 0 {
		groups[1] = []*domain.ItineraryItem{}
		return groups
	}

	prevDay := 0
	prevHour := 0

	for i, it := range items {
		hour := it.ScheduleHour()

		var day int
		if resolved, ok := it.ResolvedDay(); ok {
			day = resolved.Day
		} else if it.HasExplicitDay() {
			day = it.Day
			it.AssignDay(day, domain.DayExplicit)
		} else if i == 0 {
			day = 1
			it.AssignDay(day, domain.DayInferred)
		} else if hour < prevHour && hour < 12 {
			// A drop into early-morning hours signals the next day.
			day = prevDay + 1
			it.AssignDay(day, domain.DayInferred)
		} else {
			day = prevDay
			it.AssignDay(day, domain.DayInferred)
		}

		groups[day] = append(groups[day], it)

		prevDay = day
		prevHour = hour
	}

	for day, bucket := range groups {
		if len(bucket) == 0 {
			delete(groups, day)
		}
	}

	return groups
}

// Days returns the group's day numbers in ascending order.
func (g DayGroups) Days() []int {
	days := make([]int, 0, len(g))
	for d := range g {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Flatten rebuilds the itinerary in day-then-index order.
func (g DayGroups) Flatten() []*domain.ItineraryItem {
	out := make([]*domain.ItineraryItem, 0)
	for _, d := range g.Days() {
		out = append(out, g[d]...)
	}
	return out
}
