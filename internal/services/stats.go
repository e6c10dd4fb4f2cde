package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/tesserahq/contacts-backend/internal/clients/redis"
	"github.com/tesserahq/contacts-backend/internal/data/repos"
	types "github.com/tesserahq/contacts-backend/internal/domain"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

// OwnerStats is the dashboard rollup for one owner's data.
type OwnerStats struct {
	ContactCount       int64            `json:"contact_count"`
	ContactListCount   int64            `json:"contact_list_count"`
	PublicListCount    int64            `json:"public_list_count"`
	WaitingListCount   int64            `json:"waiting_list_count"`
	WaitingByStatus    map[string]int64 `json:"waiting_by_status"`
	UpcomingActions    int              `json:"upcoming_actions"`
	GeneratedAtSeconds int64            `json:"generated_at"`
}

type StatsService interface {
	OwnerStats(ctx context.Context, ownerID uuid.UUID) (*OwnerStats, error)
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

type statsService struct {
	db             *gorm.DB
	log            *logger.Logger
	cache          *redisclient.Cache
	contactRepo    repos.ContactRepo
	listRepo       repos.ContactListRepo
	waitingRepo    repos.WaitingListRepo
	waitingMembers repos.WaitingListMemberRepo
	interactions   InteractionService
}

func NewStatsService(db *gorm.DB, log *logger.Logger, cache *redisclient.Cache,
	contactRepo repos.ContactRepo, listRepo repos.ContactListRepo,
	waitingRepo repos.WaitingListRepo, waitingMembers repos.WaitingListMemberRepo,
	interactions InteractionService) StatsService {
	serviceLog := log.With("service", "StatsService")
	return &statsService{
		db:             db,
		log:            serviceLog,
		cache:          cache,
		contactRepo:    contactRepo,
		listRepo:       listRepo,
		waitingRepo:    waitingRepo,
		waitingMembers: waitingMembers,
		interactions:   interactions,
	}
}

func statsCacheKey(ownerID uuid.UUID) string {
	return "stats:owner:" + ownerID.String()
}

// OwnerStats serves from the redis cache when one is configured; on a miss
// it recomputes inside a read transaction and stores the result.
func (ss *statsService) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*OwnerStats, error) {
	if raw, err := ss.cache.Get(ctx, statsCacheKey(ownerID)); err == nil {
		var cached OwnerStats
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}
	}

	stats := &OwnerStats{WaitingByStatus: map[string]int64{}}
	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		stats.ContactCount, err = ss.contactRepo.Count(ctx, tx, ownerID)
		if err != nil {
			return fmt.Errorf("count contacts: %w", err)
		}
		stats.ContactListCount, err = ss.listRepo.Count(ctx, tx, ownerID, nil)
		if err != nil {
			return fmt.Errorf("count lists: %w", err)
		}
		isPublic := true
		stats.PublicListCount, err = ss.listRepo.Count(ctx, tx, ownerID, &isPublic)
		if err != nil {
			return fmt.Errorf("count public lists: %w", err)
		}
		stats.WaitingListCount, err = ss.waitingRepo.Count(ctx, tx, ownerID)
		if err != nil {
			return fmt.Errorf("count waiting lists: %w", err)
		}

		lists, err := ss.waitingRepo.List(ctx, tx, ownerID, int(stats.WaitingListCount), 0)
		if err != nil {
			return fmt.Errorf("list waiting lists: %w", err)
		}
		for _, status := range types.MemberStatusValues() {
			stats.WaitingByStatus[status] = 0
		}
		for _, list := range lists {
			for _, status := range types.MemberStatusValues() {
				n, err := ss.waitingMembers.CountByStatus(ctx, tx, list.ID, status)
				if err != nil {
					return fmt.Errorf("count by status: %w", err)
				}
				stats.WaitingByStatus[status] += n
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	upcoming, err := ss.interactions.Upcoming(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("upcoming actions: %w", err)
	}
	stats.UpcomingActions = len(upcoming)
	stats.GeneratedAtSeconds = time.Now().Unix()

	if raw, err := json.Marshal(stats); err == nil {
		if cacheErr := ss.cache.Set(ctx, statsCacheKey(ownerID), raw); cacheErr != nil {
			ss.log.Warn("Failed to cache stats", "owner_id", ownerID, "error", cacheErr)
		}
	}
	return stats, nil
}

// Invalidate drops the owner's cached rollup so the next read recomputes.
// Called after every successful write request.
func (ss *statsService) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return ss.cache.Delete(ctx, statsCacheKey(ownerID))
}
