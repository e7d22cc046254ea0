// src/services/ride_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/ridecost/src/logger"
	"github.com/username/ridecost/src/models"
	"github.com/username/ridecost/src/parsers"
)

const (
	// path, shape, size, mtime
	ckRideSet       = "rides|%s|%s|%d|%d"
	ckRideSetPrefix = "rides|%s|"
)

type rideServiceImpl struct {
	rideCache     *cache.Cache
	maxInputBytes int64
}

// NewRideService returns a RideService backed by rideCache. A non-positive
// maxInputBytes disables the size check.
func NewRideService(rideCache *cache.Cache, maxInputBytes int64) RideService {
	return &rideServiceImpl{
		rideCache:     rideCache,
		maxInputBytes: maxInputBytes,
	}
}

// Read returns the ride file at path in the given shape. A file whose size and
// modification time are unchanged is served from the cache. Returned sets are
// shared between callers and must not be modified.
func (s *rideServiceImpl) Read(path string, shape models.Shape) (*models.RideSet, error) {
	startTime := time.Now()

	f, info, err := openValidated(path, s.maxInputBytes)
	if err != nil {
		logger.L.Error("Ride input rejected", "path", path, "error", err)
		return nil, err
	}
	defer f.Close()

	cacheKey := fmt.Sprintf(ckRideSet, path, shape, info.Size(), info.ModTime().UnixNano())
	if cached, found := s.rideCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for ride set", "path", path, "shape", shape)
		return cached.(*models.RideSet), nil
	}

	set, err := parsers.ReadRidesFrom(f, shape)
	if err != nil {
		logger.L.Error("Failed to read ride file", "path", path, "shape", shape, "error", err)
		return nil, fmt.Errorf("reading %s as %s: %w", path, shape, err)
	}
	set.Source = path

	s.rideCache.Set(cacheKey, set, cache.DefaultExpiration)
	logger.L.Info("Read ride file", "path", path, "shape", shape, "size", set.Len(), "duration", time.Since(startTime))
	return set, nil
}

// Invalidate drops every cached shape of path.
func (s *rideServiceImpl) Invalidate(path string) {
	prefix := fmt.Sprintf(ckRideSetPrefix, path)
	for key := range s.rideCache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.rideCache.Delete(key)
		}
	}
	logger.L.Info("Invalidated ride cache", "path", path)
}
