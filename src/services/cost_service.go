// src/services/cost_service.go
package services

import (
	"fmt"

	"github.com/username/ridecost/src/logger"
	"github.com/username/ridecost/src/processors"
	"github.com/username/ridecost/src/utils"
)

type costServiceImpl struct {
	maxInputBytes int64
}

func NewCostService(maxInputBytes int64) CostService {
	return &costServiceImpl{maxInputBytes: maxInputBytes}
}

// TotalCost validates the portfolio file and sums its cost. Format errors come
// back unchanged so the caller can apply its fail-fast policy.
func (s *costServiceImpl) TotalCost(path string) (float64, error) {
	f, _, err := openValidated(path, s.maxInputBytes)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	total, err := processors.TotalCost(f)
	if err != nil {
		return 0, fmt.Errorf("computing cost of %s: %w", path, err)
	}
	logger.L.Info("Computed portfolio cost", "path", path, "total", utils.RoundFloat(total, 2))
	return total, nil
}
