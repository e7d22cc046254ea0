// src/processors/ride_processor.go
package processors

import (
	"github.com/username/ridecost/src/models"
	"github.com/username/ridecost/src/utils"
)

// RideSummary aggregates ride counts over a set of records.
type RideSummary struct {
	Rows        int            `json:"rows"`
	TotalRides  int            `json:"total_rides"`
	ByRoute     map[string]int `json:"by_route"`
	ByYear      map[int]int    `json:"by_year"`
	ByDayType   map[string]int `json:"by_day_type"`
	UndatedRows int            `json:"undated_rows"` // rows whose date has no usable year
}

// SummarizeRides totals rides by route, year and day type.
func SummarizeRides(records []models.RideRecord) RideSummary {
	summary := RideSummary{
		ByRoute:   make(map[string]int),
		ByYear:    make(map[int]int),
		ByDayType: make(map[string]int),
	}

	for _, r := range records {
		summary.Rows++
		summary.TotalRides += r.Rides
		summary.ByRoute[r.Route] += r.Rides
		summary.ByDayType[r.DayType] += r.Rides

		year, err := utils.YearFromDate(r.Date)
		if err != nil {
			summary.UndatedRows++
			continue
		}
		summary.ByYear[year] += r.Rides
	}

	return summary
}
