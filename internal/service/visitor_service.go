package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Zachkp/portfolio/internal/domain"
)

// VisitorRetention is how long page views are kept before cleanup.
const VisitorRetention = 365 * 24 * time.Hour

const recentVisitorLimit = 50

// VisitorService records page views under a salted hash of the client
// address. Raw addresses are never stored.
type VisitorService struct {
	repo domain.VisitorRepository
	salt string
	now  func() time.Time
}

func NewVisitorService(repo domain.VisitorRepository, salt string) *VisitorService {
	return &VisitorService{repo: repo, salt: salt, now: time.Now}
}

// HashIP is stable for one salt, so unique visitors can be counted.
func (s *VisitorService) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (s *VisitorService) Track(ctx context.Context, ip, userAgent, path string) error {
	v := &domain.VisitorMetric{
		HashedIP:  s.HashIP(ip),
		UserAgent: userAgent,
		Path:      path,
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.Record(ctx, v); err != nil {
		return fmt.Errorf("record visitor: %w", err)
	}
	return nil
}

func (s *VisitorService) Stats(ctx context.Context) (*domain.VisitorStats, error) {
	stats, err := s.repo.Stats(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("visitor stats: %w", err)
	}
	return stats, nil
}

func (s *VisitorService) Recent(ctx context.Context, limit int) ([]domain.VisitorMetric, error) {
	visitors, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	return visitors, nil
}

// Cleanup deletes page views older than VisitorRetention.
func (s *VisitorService) Cleanup(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteOlderThan(ctx, s.now().Add(-VisitorRetention))
	if err != nil {
		return 0, fmt.Errorf("visitor cleanup: %w", err)
	}
	return n, nil
}
