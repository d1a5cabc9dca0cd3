package run_sweep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	sweepReservations "github.com/m04kA/SMC-SalonService/internal/usecase/sweep_reservations"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

type stubSweepUseCase struct {
	resp *sweepReservations.Response
	err  error
}

func (u *stubSweepUseCase) Execute(ctx context.Context) (*sweepReservations.Response, error) {
	return u.resp, u.err
}

func TestHandle_RecordsMetrics(t *testing.T) {
	m := metrics.New("run-sweep-test")

	useCase := &stubSweepUseCase{resp: &sweepReservations.Response{
		CheckedCount:   5,
		CompletedCount: 3,
		CompletedIDs:   []int64{1, 2, 3},
	}}
	h := NewHandler(useCase, m, &noopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/internal/sweep", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SweepRunsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.SweepCompletedTotal.WithLabelValues("http")))

	h = NewHandler(&stubSweepUseCase{err: errors.New("db down")}, m, &noopLogger{})
	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/internal/sweep", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SweepRunsTotal.WithLabelValues("error")))
}

func TestHandle_NilMetrics(t *testing.T) {
	useCase := &stubSweepUseCase{resp: &sweepReservations.Response{}}
	h := NewHandler(useCase, nil, &noopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/internal/sweep", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"checkedCount":0,"completedCount":0,"completedIds":[]}`, rec.Body.String())
}
