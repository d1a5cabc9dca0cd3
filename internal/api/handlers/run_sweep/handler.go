package run_sweep

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

// SweepResponse HTTP response model
type SweepResponse struct {
	CheckedCount   int     `json:"checkedCount"`
	CompletedCount int     `json:"completedCount"`
	CompletedIDs   []int64 `json:"completedIds"`
}

type Handler struct {
	useCase SweepUseCase
	metrics *metrics.Metrics // nil, если метрики выключены
	logger  Logger
}

func NewHandler(useCase SweepUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /internal/sweep
// Внутренний endpoint - защищен токеном X-Sweep-Token
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		if h.metrics != nil {
			h.metrics.ObserveSweepRun("error")
		}
		h.logger.Error("POST /internal/sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveSweepRun("success")
		h.metrics.ObserveSweepCompleted("http", result.CompletedCount)
	}

	resp := SweepResponse{
		CheckedCount:   result.CheckedCount,
		CompletedCount: result.CompletedCount,
		CompletedIDs:   result.CompletedIDs,
	}
	if resp.CompletedIDs == nil {
		resp.CompletedIDs = []int64{}
	}

	h.logger.Info("POST /internal/sweep - Checked %d, completed %d reservations", result.CheckedCount, result.CompletedCount)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
