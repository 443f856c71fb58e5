// internal/storage/cache.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"apt-recommender/internal/common/logger"
	"apt-recommender/internal/models"
	"apt-recommender/internal/recommend"
)

// CachedStationProvider caches station lookups in Redis. Station data
// changes on the order of months, so a short TTL is already overly cautious;
// any cache failure falls through to the underlying provider.
type CachedStationProvider struct {
	next   recommend.StationProvider
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStationProvider(next recommend.StationProvider, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedStationProvider {
	return &CachedStationProvider{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "station-cache"}),
	}
}

// stationCacheKey rounds the coordinate to four decimal places (~11 m) so
// candidates in the same building share an entry.
func stationCacheKey(location models.Coordinate) string {
	return fmt.Sprintf("stations:%.4f:%.4f", location.Lat, location.Lng)
}

func (p *CachedStationProvider) NearbyStations(ctx context.Context, location models.Coordinate) ([]models.Station, error) {
	key := stationCacheKey(location)

	if val, err := p.redis.Get(ctx, key).Result(); err == nil {
		var stations []models.Station
		if err := json.Unmarshal([]byte(val), &stations); err == nil {
			return stations, nil
		}
		p.logger.Warn("discarding unreadable station cache entry", map[string]interface{}{"key": key})
	}

	stations, err := p.next.NearbyStations(ctx, location)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stations); err == nil {
		if err := p.redis.Set(ctx, key, data, p.ttl).Err(); err != nil {
			p.logger.Warn("failed to cache station lookup", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return stations, nil
}
