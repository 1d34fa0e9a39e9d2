package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"detour/pkg/domain"
)

// Route kinds used in cache keys.
const (
	KindShortest = "shortest"
	KindDetour   = "detour"
)

// RouteCache специализированный кэш для результатов запросов маршрута.
// Unreachable answers are cached too, so repeated "no path" queries skip the search.
type RouteCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedRoute кэшированный результат запроса
type CachedRoute struct {
	Vertices    []domain.VertexID `json:"vertices,omitempty"`
	Distance    domain.Weight     `json:"distance"`
	Unreachable bool              `json:"unreachable,omitempty"`
	ComputedAt  time.Time         `json:"computed_at"`
}

// Path возвращает путь, nil для недостижимой цели
func (r *CachedRoute) Path() *domain.Path {
	if r.Unreachable {
		return nil
	}
	return &domain.Path{Vertices: r.Vertices, Distance: r.Distance}
}

// NewRouteCache создаёт кэш маршрутов
func NewRouteCache(cache Cache, defaultTTL time.Duration) *RouteCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &RouteCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get получает кэшированный результат; found=false при промахе
func (rc *RouteCache) Get(ctx context.Context, networkHash, kind string, source, target domain.VertexID) (*CachedRoute, bool, error) {
	key := BuildRouteKey(networkHash, kind, source, target)

	data, err := rc.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var route CachedRoute
	if err := json.Unmarshal(data, &route); err != nil {
		// Повреждённая запись, удаляем
		_ = rc.cache.Delete(ctx, key)
		return nil, false, nil
	}

	return &route, true, nil
}

// Set сохраняет путь; path == nil означает недостижимую цель
func (rc *RouteCache) Set(ctx context.Context, networkHash, kind string, source, target domain.VertexID, path *domain.Path) error {
	route := CachedRoute{
		Unreachable: path == nil,
		ComputedAt:  time.Now(),
	}
	if path != nil {
		route.Vertices = path.Vertices
		route.Distance = path.Distance
	}

	data, err := json.Marshal(route)
	if err != nil {
		return err
	}

	return rc.cache.Set(ctx, BuildRouteKey(networkHash, kind, source, target), data, rc.defaultTTL)
}

// Invalidate удаляет все маршруты сети
func (rc *RouteCache) Invalidate(ctx context.Context, networkHash string) (int64, error) {
	return rc.cache.DeleteByPattern(ctx, fmt.Sprintf("route:%s:*", networkHash))
}

// Stats возвращает статистику нижележащего кэша
func (rc *RouteCache) Stats(ctx context.Context) (*Stats, error) {
	return rc.cache.Stats(ctx)
}

// Close закрывает нижележащий кэш
func (rc *RouteCache) Close() error {
	return rc.cache.Close()
}
