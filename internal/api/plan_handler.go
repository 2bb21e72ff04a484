package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/api/shared"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/platform/logger"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/redact"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/service"
)

// PlanHandler handles plan generation and rebalancing HTTP requests
type PlanHandler struct {
	planService service.PlanService
	logger      *slog.Logger
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(
	planService service.PlanService,
	logger *slog.Logger,
) *PlanHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PlanHandler")
	}

	return &PlanHandler{
		planService: planService,
		logger:      logger.With(slog.String("component", "plan_handler")),
	}
}

// GeneratePlan handles POST /plans requests.
// It expands, schedules, and scores the requested week, persisting the
// result. Repeating the request with the same week start and idempotency
// key returns the stored plan instead of scheduling again.
func (h *PlanHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GeneratePlanRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	weekStart, err := domain.ParseDate(req.WeekStart)
	if err != nil {
		log.Warn("invalid week start date", slog.String("week_start", req.WeekStart))
		HandleAPIError(w, r, err, "")
		return
	}

	plan, err := h.planService.GeneratePlan(r.Context(), weekStart, req.IdempotencyKey)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate plan")
		return
	}

	log.Debug("plan generated",
		slog.String("plan_id", plan.ID.String()),
		slog.String("week_start", weekStart.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, planToResponse(plan))
}

// GetPlan handles GET /plans/{id} requests
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	planID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(r.Context(), planID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve plan")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}

// RebalancePlan handles POST /plans/{id}/rebalance requests.
// The preview is advisory: nothing is persisted and repeating the request
// yields the same proposals.
func (h *PlanHandler) RebalancePlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	planID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	preview, err := h.planService.RebalancePlan(r.Context(), planID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute rebalance preview")
		return
	}

	log.Debug("rebalance preview computed",
		slog.String("plan_id", planID.String()),
		slog.Int("swaps", len(preview.Swaps)))
	shared.RespondWithJSON(w, r, http.StatusOK, preview)
}

// planToResponse converts a domain.Plan to a PlanResponse
func planToResponse(plan *domain.Plan) PlanResponse {
	occurrences := make([]OccurrenceResponse, 0, len(plan.Occurrences))
	for i := range plan.Occurrences {
		occurrences = append(occurrences, occurrenceToResponse(&plan.Occurrences[i]))
	}

	return PlanResponse{
		ID:             plan.ID.String(),
		WeekStart:      plan.WeekStart.String(),
		IdempotencyKey: plan.IdempotencyKey,
		Truncated:      plan.Truncated,
		Occurrences:    occurrences,
		Report:         plan.Report,
		CreatedAt:      plan.CreatedAt,
	}
}

// occurrenceToResponse converts a domain.Occurrence to an OccurrenceResponse
func occurrenceToResponse(occ *domain.Occurrence) OccurrenceResponse {
	var assignee string
	if occ.AssigneeID != uuid.Nil {
		assignee = occ.AssigneeID.String()
	}

	var rationale []string
	for _, reason := range occ.Rationale {
		rationale = append(rationale, string(reason))
	}

	return OccurrenceResponse{
		ID:              occ.ID,
		TaskID:          occ.TaskID.String(),
		TaskName:        occ.TaskName,
		Category:        string(occ.Category),
		Date:            occ.Date.String(),
		StartMinute:     occ.StartMinute,
		EndMinute:       occ.EndMinute,
		DurationMinutes: occ.DurationMinutes,
		Difficulty:      occ.Difficulty,
		Tags:            occ.Tags,
		PairGroup:       occ.PairGroup,
		Status:          string(occ.Status),
		AssigneeID:      assignee,
		Rationale:       rationale,
	}
}
