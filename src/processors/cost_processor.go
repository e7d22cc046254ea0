// src/processors/cost_processor.go
package processors

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/ridecost/src/logger"
	"github.com/username/ridecost/src/models"
	"github.com/username/ridecost/src/parsers"
	"github.com/username/ridecost/src/security/validation"
)

// ComputeTotalCost sums shares * price over every line of the portfolio file
// at path. The first malformed line stops the computation with a
// *models.FormatError and no total.
func ComputeTotalCost(path string) (float64, error) {
	f, err := parsers.OpenInput(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	total, err := TotalCost(f)
	if err != nil {
		return 0, fmt.Errorf("computing cost of %s: %w", path, err)
	}
	logger.L.Debug("Computed portfolio cost", "path", path, "total", total)
	return total, nil
}

// TotalCost is ComputeTotalCost over an already opened input.
func TotalCost(r io.Reader) (float64, error) {
	br := bufio.NewReader(r)
	total := decimal.Zero

	for lineNo := 1; ; lineNo++ {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return 0, fmt.Errorf("failed to read line %d: %w", lineNo, readErr)
		}
		if line == "" && readErr == io.EOF {
			break
		}

		rec, err := parseCostLine(line)
		if err != nil {
			logger.L.Warn("Couldn't parse portfolio line", "line", lineNo, "text", validation.StripUnprintable(line), "error", err)
			return 0, &models.FormatError{Line: lineNo, Text: line, Err: err}
		}
		total = total.Add(rec.Cost())

		if readErr == io.EOF {
			break
		}
	}

	return total.InexactFloat64(), nil
}

// parseCostLine splits a line on runs of whitespace. Field 0 is a name, field 1
// the share count and field 2 the unit price.
func parseCostLine(line string) (models.CostRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return models.CostRecord{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	shares, err := strconv.Atoi(fields[1])
	if err != nil {
		return models.CostRecord{}, err
	}
	price, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return models.CostRecord{}, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return models.CostRecord{}, fmt.Errorf("price %q is not a finite number", fields[2])
	}

	return models.CostRecord{Name: fields[0], Shares: shares, Price: price}, nil
}
