package services

import (
	"testing"

	"travel-itinerary-service/internal/domain"
)

func itemsWithTimes(times ...string) []*domain.ItineraryItem {
	items := make([]*domain.ItineraryItem, 0, len(times))
	for i, t := range times {
		items = append(items, &domain.ItineraryItem{
			Name: string(rune('A' + i)),
			Time: t,
		})
	}
	return items
}

func assertDays(t *testing.T, groups DayGroups, items []*domain.ItineraryItem, want []int) {
	t.Helper()

	for i, it := range items {
		resolved, ok := it.ResolvedDay()
		if !ok {
			t.Fatalf("item %d has no resolved day", i)
		}
		if resolved.Day != want[i] {
			t.Errorf("item %d day = %d, want %d", i, resolved.Day, want[i])
		}
	}

	total := 0
	for _, bucket := range groups {
		total += len(bucket)
	}
	if total != len(items) {
		t.Errorf("grouped %d items, want %d", total, len(items))
	}
}

func TestPartitionDaysRollover(t *testing.T) {
	items := itemsWithTimes("09:00", "14:00", "08:00")
	groups := PartitionDays(items)

	assertDays(t, groups, items, []int{1, 1, 2})

	if len(groups[1]) != 2 || len(groups[2]) != 1 {
		t.Fatalf("bucket sizes = %d/%d, want 2/1", len(groups[1]), len(groups[2]))
	}
}

func TestPartitionDaysEqualHourNeverRollsOver(t *testing.T) {
	items := itemsWithTimes("09:00", "10:00", "10:00")
	groups := PartitionDays(items)

	assertDays(t, groups, items, []int{1, 1, 1})

	if len(groups) != 1 {
		t.Fatalf("expected single day, got %d", len(groups))
	}
}

func TestPartitionDaysAfternoonDropStaysSameDay(t *testing.T) {
	// 13 < 18 but not an early-morning hour, so no rollover.
	items := itemsWithTimes("09:00", "18:00", "13:00")
	groups := PartitionDays(items)

	assertDays(t, groups, items, []int{1, 1, 1})
}

func TestPartitionDaysExplicitDayWins(t *testing.T) {
	items := itemsWithTimes("09:00", "14:00", "08:00")
	items[2].Day = 5

	groups := PartitionDays(items)

	assertDays(t, groups, items, []int{1, 1, 5})

	if len(groups[5]) != 1 {
		t.Fatalf("day 5 bucket size = %d, want 1", len(groups[5]))
	}
}

func TestPartitionDaysMalformedTimesDefaultToNine(t *testing.T) {
	items := itemsWithTimes("", "1400", "ab:00")
	groups := PartitionDays(items)

	// All three resolve to hour 9: no drops, single day.
	assertDays(t, groups, items, []int{1, 1, 1})
}

func TestPartitionDaysOrderPreserving(t *testing.T) {
	items := itemsWithTimes("09:00", "14:00", "08:00", "12:00", "07:00")
	groups := PartitionDays(items)

	flat := groups.Flatten()
	if len(flat) != len(items) {
		t.Fatalf("flattened %d items, want %d", len(flat), len(items))
	}
	for i := range items {
		if flat[i] != items[i] {
			t.Errorf("flatten[%d] = %q, want %q", i, flat[i].Name, items[i].Name)
		}
	}
}

func TestPartitionDaysIdempotent(t *testing.T) {
	items := itemsWithTimes("09:00", "14:00", "08:00")

	first := PartitionDays(items)
	second := PartitionDays(items)

	if len(first) != len(second) {
		t.Fatalf("group counts differ: %d vs %d", len(first), len(second))
	}
	for day, bucket := range first {
		other := second[day]
		if len(bucket) != len(other) {
			t.Fatalf("day %d sizes differ: %d vs %d", day, len(bucket), len(other))
		}
		for i := range bucket {
			if bucket[i] != other[i] {
				t.Errorf("day %d item %d differs across runs", day, i)
			}
		}
	}
}

func TestPartitionDaysEmptyInput(t *testing.T) {
	groups := PartitionDays(nil)

	bucket, ok := groups[1]
	if !ok {
		t.Fatal("expected a day 1 bucket for empty input")
	}
	if len(bucket) != 0 {
		t.Fatalf("day 1 bucket size = %d, want 0", len(bucket))
	}
}
