package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

func TestSearch(t *testing.T) {
	trips := sampleTrips()
	assert.Equal(t, []int{0, 2, 3}, ids(Search(trips, "home")))
	assert.Equal(t, []int{3}, ids(Search(trips, "2024-02")))
	assert.Equal(t, []int{0, 1, 2, 3}, ids(Search(trips, "")))
	assert.Empty(t, Search(trips, "airport"))
}

func TestSort(t *testing.T) {
	trips := sampleTrips()

	assert.Equal(t, []int{3, 2, 1, 0}, ids(Sort(trips, models.SortByStartDate, "")))
	assert.Equal(t, []int{0, 1, 2, 3}, ids(Sort(trips, models.SortByStartDate, models.SortOrderAscending)))
	assert.Equal(t, []int{1, 0, 2, 3}, ids(Sort(trips, models.SortByDistance, models.SortOrderAscending)))
	assert.Equal(t, []int{1, 0, 2, 3}, ids(Sort(trips, models.SortByEfficiency, models.SortOrderDescending)))
	assert.Equal(t, []int{3, 1, 0, 2}, ids(Sort(trips, models.SortBySocDrop, models.SortOrderAscending)))

	assert.Equal(t, []int{0, 1, 2, 3}, ids(trips), "input untouched")
}

func TestSort_UnparsableDatesLast(t *testing.T) {
	trips := []models.Trip{
		{ID: 0, StartDate: "garbage"},
		{ID: 1, StartDate: "2024-01-01, 10:00"},
		{ID: 2, StartDate: "2023-12-31, 10:00"},
	}
	assert.Equal(t, []int{2, 1, 0}, ids(Sort(trips, models.SortByStartDate, models.SortOrderAscending)))
}
