// src/parsers/factory.go
package parsers

import (
	"fmt"

	"github.com/username/ridecost/src/models"
	"github.com/username/ridecost/src/utils"
)

// GetRowBuilder returns the constructor for a row shape.
func GetRowBuilder(shape models.Shape) (RowBuilder[models.Row], error) {
	switch shape {
	case models.ShapeTuple:
		return asRow(TupleBuilder), nil
	case models.ShapeMapping:
		return asRow(MappingBuilder), nil
	case models.ShapeRecord:
		return asRow(RecordBuilder), nil
	case models.ShapeRawText, models.ShapeLineList:
		return nil, fmt.Errorf("%w: shape %q is not parsed into rows", models.ErrUnknownShape, shape)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownShape, shape)
	}
}

func RecordBuilder(r models.RideRecord) (models.RideRecord, error) {
	return r, nil
}

func TupleBuilder(r models.RideRecord) (models.RideTuple, error) {
	return models.NewRideTuple(r), nil
}

// MappingBuilder adds the year taken from the date. Dates without a third
// slash-separated component are a format error.
func MappingBuilder(r models.RideRecord) (models.RideMap, error) {
	year, err := utils.YearFromDate(r.Date)
	if err != nil {
		return nil, fieldError("date", err)
	}
	return models.NewRideMap(r, year), nil
}

func asRow[T models.Row](build RowBuilder[T]) RowBuilder[models.Row] {
	return func(r models.RideRecord) (models.Row, error) {
		row, err := build(r)
		if err != nil {
			return nil, err
		}
		return row, nil
	}
}
