// src/models/ride.go
package models

import "fmt"

// Shape selects the in-memory representation a ride file is read into.
type Shape string

const (
	ShapeRawText  Shape = "raw_text"  // whole file content, unparsed
	ShapeLineList Shape = "line_list" // one string per line, unparsed
	ShapeTuple    Shape = "tuple"     // RideTuple
	ShapeMapping  Shape = "mapping"   // RideMap, with derived year
	ShapeRecord   Shape = "record"    // RideRecord
)

// Shapes lists every supported shape in a stable order.
var Shapes = []Shape{ShapeRawText, ShapeLineList, ShapeTuple, ShapeMapping, ShapeRecord}

// IsRowShape reports whether the shape goes through CSV parsing and yields one value per data row.
func (s Shape) IsRowShape() bool {
	return s == ShapeTuple || s == ShapeMapping || s == ShapeRecord
}

// Row is implemented by every per-row representation.
type Row interface {
	Record() RideRecord
}

// RideRecord is one row of bus ridership data.
type RideRecord struct {
	Route   string `json:"route"`
	Date    string `json:"date"`    // M/D/YYYY
	DayType string `json:"daytype"` // e.g. "W", "A", "U"
	Rides   int    `json:"rides"`
}

// Record returns r itself.
func (r RideRecord) Record() RideRecord { return r }

// RideTuple is the fixed-order (route, date, daytype, rides) form.
type RideTuple [4]any

// NewRideTuple builds the tuple form of r.
func NewRideTuple(r RideRecord) RideTuple {
	return RideTuple{r.Route, r.Date, r.DayType, r.Rides}
}

// Record converts the tuple back to a RideRecord. Elements of the wrong type
// yield zero values.
func (t RideTuple) Record() RideRecord {
	route, _ := t[0].(string)
	date, _ := t[1].(string)
	dayType, _ := t[2].(string)
	rides, _ := t[3].(int)
	return RideRecord{Route: route, Date: date, DayType: dayType, Rides: rides}
}

// Keys used by RideMap.
const (
	KeyRoute   = "route"
	KeyDate    = "date"
	KeyDayType = "daytype"
	KeyRides   = "rides"
	KeyYear    = "year"
)

// RideMap is the key-value form. Besides the four source columns it carries
// the year derived from the date.
type RideMap map[string]any

// NewRideMap builds the key-value form of r with the given derived year.
func NewRideMap(r RideRecord, year int) RideMap {
	return RideMap{
		KeyRoute:   r.Route,
		KeyDate:    r.Date,
		KeyDayType: r.DayType,
		KeyRides:   r.Rides,
		KeyYear:    year,
	}
}

// Record converts the map back to a RideRecord, dropping the year. Missing or
// mistyped keys yield zero values.
func (m RideMap) Record() RideRecord {
	route, _ := m[KeyRoute].(string)
	date, _ := m[KeyDate].(string)
	dayType, _ := m[KeyDayType].(string)
	rides, _ := m[KeyRides].(int)
	return RideRecord{Route: route, Date: date, DayType: dayType, Rides: rides}
}

// Year returns the derived year, or 0 when absent.
func (m RideMap) Year() int {
	year, _ := m[KeyYear].(int)
	return year
}

// RideSet holds the result of reading one ride file in exactly one shape.
// Text is set for ShapeRawText, Lines for ShapeLineList and Rows for the row shapes.
type RideSet struct {
	Source string
	Shape  Shape
	Text   string
	Lines  []string
	Rows   []Row
}

// Len returns the number of elements in the set for its shape.
// For ShapeRawText it is the length of the content in bytes.
func (s *RideSet) Len() int {
	switch s.Shape {
	case ShapeRawText:
		return len(s.Text)
	case ShapeLineList:
		return len(s.Lines)
	default:
		return len(s.Rows)
	}
}

// Records flattens the rows into fixed-schema records. It fails for shapes
// that were never parsed into columns.
func (s *RideSet) Records() ([]RideRecord, error) {
	if !s.Shape.IsRowShape() {
		return nil, fmt.Errorf("shape %q has no parsed rows", s.Shape)
	}
	records := make([]RideRecord, 0, len(s.Rows))
	for _, row := range s.Rows {
		records = append(records, row.Record())
	}
	return records, nil
}
