package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"farmlink/models"
)

const searchCacheTTL = 60 * time.Second

// SearchService answers free-text product queries over name, description and
// farm name. With Postgres full-text enabled it uses the tsvector index,
// otherwise it degrades to ILIKE matching. Results are cached briefly in
// redis when one is configured.
type SearchService struct {
	DB          *gorm.DB
	Redis       *redis.Client
	UsePostgres bool
}

func NewSearchService(db *gorm.DB, rdb *redis.Client, usePostgres bool) *SearchService {
	return &SearchService{DB: db, Redis: rdb, UsePostgres: usePostgres}
}

func (s *SearchService) FullTextSearch(ctx context.Context, query string) ([]models.Product, error) {
	cacheKey := "search:" + query
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var products []models.Product
			if json.Unmarshal([]byte(cached), &products) == nil {
				return products, nil
			}
		}
	}

	var products []models.Product
	base := s.DB.Preload("Category").Preload("Farmer").
		Joins("JOIN users ON users.id = products.farmer_id")

	var err error
	if s.UsePostgres {
		err = base.Where(
			`to_tsvector('english', products.name || ' ' || products.description || ' ' || users.farm_name) @@ plainto_tsquery('english', ?)`,
			query,
		).Find(&products).Error
	} else {
		pattern := "%" + query + "%"
		err = base.Where(
			"products.name ILIKE ? OR products.description ILIKE ? OR users.farm_name ILIKE ?",
			pattern, pattern, pattern,
		).Find(&products).Error
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(products); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, encoded, searchCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("Failed to cache search results")
			}
		}
	}

	return products, nil
}
