package notification

import (
	"context"
	"time"

	"homekeeper/internal/pkg/logger"
)

// CleanupService trims notification history nobody can see any more.
type CleanupService struct {
	repo *Repository
}

func NewCleanupService(repo *Repository) *CleanupService {
	return &CleanupService{repo: repo}
}

// PruneBeyond deletes everything past the newest keep notifications of a
// user and returns how many went.
func (c *CleanupService) PruneBeyond(ctx context.Context, userID string, keep int) (int, error) {
	startTime := time.Now()

	list, err := c.repo.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(list) <= keep {
		return 0, nil
	}

	sortNewestFirst(list)
	deleted := 0
	for _, n := range list[keep:] {
		if err := c.repo.Delete(ctx, userID, n.ID); err != nil {
			logger.Warn(ctx, "Failed to prune notification", "notification_id", n.ID, "error", err)
			continue
		}
		deleted++
	}

	logger.Info(ctx, "Pruned notifications",
		"user_id", userID,
		"deleted", deleted,
		"duration", time.Since(startTime).String(),
	)
	return deleted, nil
}
