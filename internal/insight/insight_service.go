package insight

import (
	"context"
	"time"

	"unicube-hr/internal/leave"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// NoDataMessage is returned without calling upstream when there are
	// no leave requests at all.
	NoDataMessage = "No leave request data available to generate a report."

	// NoTrendsSentinel is the upstream's literal nothing-to-report answer;
	// it passes through untouched.
	NoTrendsSentinel = "No significant trends detected."

	ReportCacheKey = "insight:report"
	reportCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=insight_service.go -destination=mock/insight_service_mock.go -package=mock
type Service interface {
	GenerateReport(ctx context.Context) (string, error)
	InvalidateReport(ctx context.Context)
}

type service struct {
	leaves leave.Repository
	gen    Generator
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(leaves leave.Repository, gen Generator, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("insight.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("insight.service")
	}
	return &service{
		leaves: leaves,
		gen:    gen,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GenerateReport(ctx context.Context) (string, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, ReportCacheKey).Result()
		if err == nil && cached != "" {
			return cached, nil
		}
	}

	// collapse concurrent admin clicks into a single upstream call
	v, err, _ := s.sf.Do(ReportCacheKey, func() (interface{}, error) {
		reqs, err := s.leaves.FindAll(ctx)
		if err != nil {
			return "", err
		}

		if len(reqs) == 0 {
			return NoDataMessage, nil
		}

		report, err := s.gen.Generate(ctx, anonymize(reqs))
		if err != nil {
			return "", err
		}

		if s.rdb != nil {
			if err := s.rdb.Set(ctx, ReportCacheKey, report, reportCacheTTL).Err(); err != nil {
				s.logger.Warn("cache insight report failed", zap.Error(err))
			}
		}
		return report, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *service) InvalidateReport(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ReportCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate insight report failed", zap.Error(err))
	}
}

// anonymize strips every identity field before the data crosses the
// report boundary.
func anonymize(reqs []leave.LeaveRequest) []AnonymizedLeave {
	out := make([]AnonymizedLeave, len(reqs))
	for i, r := range reqs {
		out[i] = AnonymizedLeave{
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Reason:    r.Reason,
			Status:    r.Status,
		}
	}
	return out
}
