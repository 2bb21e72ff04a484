package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/api/shared"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/platform/logger"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/redact"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/service"
)

// PersonHandler handles household member HTTP requests
type PersonHandler struct {
	householdService service.HouseholdService
	logger           *slog.Logger
}

// NewPersonHandler creates a new PersonHandler
func NewPersonHandler(
	householdService service.HouseholdService,
	logger *slog.Logger,
) *PersonHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PersonHandler")
	}

	return &PersonHandler{
		householdService: householdService,
		logger:           logger.With(slog.String("component", "person_handler")),
	}
}

// CreatePerson handles POST /people requests
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PersonRequest
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

	person, err := domain.NewPerson(req.DisplayName, req.WeeklyBudgetMinutes)
	if err != nil {
		log.Warn("invalid person", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid entity data", err)
		return
	}
	applyPersonRequest(person, &req)

	if err := person.Validate(); err != nil {
		log.Warn("invalid person", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid entity data", err)
		return
	}

	if err := h.householdService.CreatePerson(r.Context(), person); err != nil {
		HandleAPIError(w, r, err, "Failed to create person")
		return
	}

	log.Debug("person created", slog.String("person_id", person.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, personToResponse(person))
}

// GetPerson handles GET /people/{id} requests
func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	personID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	person, err := h.householdService.GetPerson(r.Context(), personID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve person")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, personToResponse(person))
}

// ListPeople handles GET /people requests
func (h *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.householdService.ListPeople(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list people")
		return
	}

	responses := make([]PersonResponse, 0, len(people))
	for i := range people {
		responses = append(responses, personToResponse(&people[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdatePerson handles PUT /people/{id} requests
func (h *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	personID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req PersonRequest
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

	person := &domain.Person{
		ID:                  personID,
		DisplayName:         req.DisplayName,
		WeeklyBudgetMinutes: req.WeeklyBudgetMinutes,
	}
	applyPersonRequest(person, &req)

	if err := person.Validate(); err != nil {
		log.Warn("invalid person", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid entity data", err)
		return
	}

	if err := h.householdService.UpdatePerson(r.Context(), person); err != nil {
		HandleAPIError(w, r, err, "Failed to update person")
		return
	}

	// Re-read so the response carries the store-set timestamps.
	updated, err := h.householdService.GetPerson(r.Context(), personID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve person")
		return
	}

	log.Debug("person updated", slog.String("person_id", personID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, personToResponse(updated))
}

// DeletePerson handles DELETE /people/{id} requests
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	personID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.householdService.DeletePerson(r.Context(), personID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete person")
		return
	}

	log.Debug("person deleted", slog.String("person_id", personID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// applyPersonRequest copies the optional preference fields from the
// request onto the domain object.
func applyPersonRequest(person *domain.Person, req *PersonRequest) {
	person.WeeknightCapMinutes = req.WeeknightCapMinutes
	person.DislikedTags = req.DislikedTags
	person.NoGoTags = req.NoGoTags

	if len(req.Unavailability) > 0 {
		windows := make([]domain.UnavailabilityWindow, 0, len(req.Unavailability))
		for _, w := range req.Unavailability {
			windows = append(windows, domain.UnavailabilityWindow{
				Weekday:     time.Weekday(w.Weekday),
				StartMinute: w.StartMinute,
				EndMinute:   w.EndMinute,
			})
		}
		person.Unavailability = windows
	}
}

// personToResponse converts a domain.Person to a PersonResponse
func personToResponse(person *domain.Person) PersonResponse {
	var windows []UnavailabilityWindowPayload
	for _, w := range person.Unavailability {
		windows = append(windows, UnavailabilityWindowPayload{
			Weekday:     int(w.Weekday),
			StartMinute: w.StartMinute,
			EndMinute:   w.EndMinute,
		})
	}

	return PersonResponse{
		ID:                  person.ID.String(),
		DisplayName:         person.DisplayName,
		WeeklyBudgetMinutes: person.WeeklyBudgetMinutes,
		WeeknightCapMinutes: person.WeeknightCapMinutes,
		DislikedTags:        person.DislikedTags,
		NoGoTags:            person.NoGoTags,
		Unavailability:      windows,
		CreatedAt:           person.CreatedAt,
		UpdatedAt:           person.UpdatedAt,
	}
}
