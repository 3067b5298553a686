package cron

import (
	"context"
	"fmt"

	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/metrics"
)

const recruitmentDeadlineJobName = "recruitment-deadline-close"

type recruitmentCloser interface {
	CloseExpired(ctx context.Context) (int, error)
}

// RecruitmentDeadlineJobParams configure the deadline auto-close job.
type RecruitmentDeadlineJobParams struct {
	Logger  *logger.Logger
	Service recruitmentCloser
	Metrics *metrics.CronJobMetrics
}

// NewRecruitmentDeadlineJob closes published postings whose auto-close
// deadline has passed.
func NewRecruitmentDeadlineJob(params RecruitmentDeadlineJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Service == nil {
		return nil, fmt.Errorf("recruitments service required")
	}
	return &recruitmentDeadlineJob{
		logg:    params.Logger,
		service: params.Service,
		metrics: params.Metrics,
	}, nil
}

type recruitmentDeadlineJob struct {
	logg    *logger.Logger
	service recruitmentCloser
	metrics *metrics.CronJobMetrics
}

func (j *recruitmentDeadlineJob) Name() string { return recruitmentDeadlineJobName }

func (j *recruitmentDeadlineJob) Run(ctx context.Context) error {
	closed, err := j.service.CloseExpired(ctx)
	if j.metrics != nil && closed > 0 {
		j.metrics.AddClosedPostings(j.Name(), closed)
	}
	if err != nil {
		return fmt.Errorf("recruitment deadline close: %w", err)
	}
	logCtx := j.logg.WithField(ctx, "postings_closed", closed)
	j.logg.Info(logCtx, "recruitment deadline sweep complete")
	return nil
}
