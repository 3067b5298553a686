package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/teamflowhq/teamflow-backend/pkg/metrics"
)

type fakeCloser struct {
	closed int
	err    error
	calls  int
}

func (f *fakeCloser) CloseExpired(context.Context) (int, error) {
	f.calls++
	return f.closed, f.err
}

func TestRecruitmentDeadlineJobRecordsClosedPostings(t *testing.T) {
	reg := prometheus.NewRegistry()
	jobMetrics := metrics.NewCronJobMetrics(reg)
	job, err := NewRecruitmentDeadlineJob(RecruitmentDeadlineJobParams{
		Logger:  cronTestLogger(),
		Service: &fakeCloser{closed: 3},
		Metrics: jobMetrics,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run job: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	var counter *dto.MetricFamily
	for _, family := range families {
		if family.GetName() == "cron_postings_closed_total" {
			counter = family
		}
	}
	if counter == nil {
		t.Fatal("expected cron_postings_closed_total to be registered")
	}
	if got := counter.GetMetric()[0].GetCounter().GetValue(); got != 3 {
		t.Fatalf("expected 3 closed postings recorded, got %v", got)
	}
}

func TestRecruitmentDeadlineJobPropagatesError(t *testing.T) {
	job, err := NewRecruitmentDeadlineJob(RecruitmentDeadlineJobParams{
		Logger:  cronTestLogger(),
		Service: &fakeCloser{err: errors.New("db down")},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
