// src/parsers/ride_parser.go
package parsers

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/username/ridecost/src/logger"
	"github.com/username/ridecost/src/models"
)

// Ride file columns, by position.
const (
	colRoute = iota
	colDate
	colDayType
	colRides

	rideColumns
)

// RowBuilder turns one parsed ride record into the caller's representation.
type RowBuilder[T any] func(models.RideRecord) (T, error)

// ReadRideRows parses ride CSV from r. The first row is a header and is
// discarded without inspection. Every other row goes through build, in file order.
func ReadRideRows[T any](r io.Reader, build RowBuilder[T]) ([]T, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows := make([]T, 0)
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return rows, nil
		}
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			return nil, fmt.Errorf("failed to read CSV header: %w", err)
		}
		return nil, &models.FormatError{Line: parseErr.StartLine, Err: fmt.Errorf("failed to read CSV header: %w", err)}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("failed to read CSV row: %w", err)
			}
			return nil, &models.FormatError{Line: parseErr.StartLine, Err: err}
		}

		line, _ := reader.FieldPos(0)
		row, err := buildRow(record, build)
		if err != nil {
			var formatErr *models.FormatError
			if !errors.As(err, &formatErr) {
				formatErr = &models.FormatError{Err: err}
			}
			formatErr.Line = line
			formatErr.Text = strings.Join(record, ",")
			return nil, formatErr
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func buildRow[T any](record []string, build RowBuilder[T]) (T, error) {
	var zero T
	rec, err := parseRideRecord(record)
	if err != nil {
		return zero, err
	}
	return build(rec)
}

func parseRideRecord(record []string) (models.RideRecord, error) {
	if len(record) < rideColumns {
		return models.RideRecord{}, fmt.Errorf("expected %d columns, got %d", rideColumns, len(record))
	}
	rides, err := strconv.Atoi(strings.TrimSpace(record[colRides]))
	if err != nil {
		return models.RideRecord{}, fieldError("rides", err)
	}
	return models.RideRecord{
		Route:   record[colRoute],
		Date:    record[colDate],
		DayType: record[colDayType],
		Rides:   rides,
	}, nil
}

// ReadRides reads the ride file at path into the requested shape.
func ReadRides(path string, shape models.Shape) (*models.RideSet, error) {
	f, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := ReadRidesFrom(f, shape)
	if err != nil {
		return nil, fmt.Errorf("reading %s as %s: %w", path, shape, err)
	}
	set.Source = path
	logger.L.Debug("Read ride file", "path", path, "shape", shape, "size", set.Len())
	return set, nil
}

// ReadRidesFrom is ReadRides over an already opened input.
func ReadRidesFrom(r io.Reader, shape models.Shape) (*models.RideSet, error) {
	set := &models.RideSet{Shape: shape}
	var err error

	switch shape {
	case models.ShapeRawText:
		set.Text, err = rawText(r)
	case models.ShapeLineList:
		set.Lines, err = lines(r)
	default:
		var build RowBuilder[models.Row]
		if build, err = GetRowBuilder(shape); err != nil {
			return nil, err
		}
		set.Rows, err = ReadRideRows(r, build)
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

// ReadRawText returns the whole ride file as one string.
func ReadRawText(path string) (string, error) {
	return readFile(path, rawText)
}

// ReadLines returns the ride file as a list of lines, each keeping its terminator.
func ReadLines(path string) ([]string, error) {
	return readFile(path, lines)
}

// ReadTuples reads the ride file as fixed-order tuples.
func ReadTuples(path string) ([]models.RideTuple, error) {
	return readRows(path, TupleBuilder)
}

// ReadMappings reads the ride file as key-value rows with a derived year.
func ReadMappings(path string) ([]models.RideMap, error) {
	return readRows(path, MappingBuilder)
}

// ReadRecords reads the ride file as fixed-schema records.
func ReadRecords(path string) ([]models.RideRecord, error) {
	return readRows(path, RecordBuilder)
}

func readRows[T any](path string, build RowBuilder[T]) ([]T, error) {
	return readFile(path, func(r io.Reader) ([]T, error) {
		return ReadRideRows(r, build)
	})
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := OpenInput(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}

func rawText(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func lines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	out := make([]string, 0)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			out = append(out, line)
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
