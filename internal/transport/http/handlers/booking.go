package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dineflow/table-service/internal/application/booking"
	"github.com/dineflow/table-service/internal/domain"
	"github.com/dineflow/table-service/internal/transport/http/dto"
	"github.com/dineflow/table-service/internal/transport/http/response"
	"github.com/dineflow/table-service/internal/transport/http/validate"
)

type BookingHandler struct {
	svc *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func assignReqFromQuery(q map[string][]string) dto.AssignReq {
	get := func(k string) string {
		if v, ok := q[k]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}
	partySize, _ := strconv.Atoi(get("party_size"))
	duration, _ := strconv.Atoi(get("duration_minutes"))
	return dto.AssignReq{
		Date:            get("date"),
		Time:            get("time"),
		PartySize:       partySize,
		DurationMinutes: duration,
		AreaID:          get("area_id"),
		Shape:           get("shape"),
		Location:        get("location"),
		Accessible:      get("accessible") == "true",
	}
}

// GET /availability
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	req, err := dto.ToAssignmentRequest(assignReqFromQuery(r.URL.Query()))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	res, err := h.svc.CheckAvailability(r.Context(), req)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, res)
}

// POST /assignments
func (h *BookingHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var in dto.AssignReq
	if err := validate.DecodeJSON(r, &in); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid request body"))
		return
	}
	req, err := dto.ToAssignmentRequest(in)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	res, err := h.svc.AssignTable(r.Context(), req)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	status := http.StatusCreated
	if !res.Assigned {
		status = http.StatusOK
	}
	response.Data(w, status, res)
}

// POST /combinations
func (h *BookingHandler) Combinations(w http.ResponseWriter, r *http.Request) {
	var in dto.AssignReq
	if err := validate.DecodeJSON(r, &in); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid request body"))
		return
	}
	req, err := dto.ToAssignmentRequest(in)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	combos, err := h.svc.ProposeCombination(r.Context(), req)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, combos)
}

// GET /suggestions
// mode=best scans the evening range instead of the request neighborhood.
func (h *BookingHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := dto.ToAssignmentRequest(assignReqFromQuery(q))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if q.Get("mode") == "best" {
		suggestions, err := h.svc.BestTimesInRange(r.Context(), req)
		if err != nil {
			response.Err(w, r, err)
			return
		}
		response.Data(w, http.StatusOK, suggestions)
		return
	}

	windowMinutes, _ := strconv.Atoi(q.Get("window_minutes"))
	suggestions, err := h.svc.AlternativeTimes(r.Context(), req, windowMinutes)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, suggestions)
}

// POST /waitlist
func (h *BookingHandler) EnqueueWaitlist(w http.ResponseWriter, r *http.Request) {
	var in dto.EnqueueWaitlistReq
	if err := validate.DecodeJSON(r, &in); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid request body"))
		return
	}

	entry, err := h.svc.EnqueueWaitlist(r.Context(), dto.ToEnqueueCmd(in))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, entry)
}

// POST /waitlist/{entry_id}/offer
func (h *BookingHandler) OfferWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entry_id")
	if !validate.IsUUID(entryID) {
		response.Err(w, r, domain.ErrValidation("invalid entry id"))
		return
	}

	var in dto.OfferReq
	if err := validate.DecodeJSON(r, &in); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid request body"))
		return
	}
	if in.TableID == "" {
		response.Err(w, r, domain.ErrValidationMeta("missing field", map[string]string{
			"table_id": "required",
		}))
		return
	}

	entry, err := h.svc.OfferEntry(r.Context(), entryID, in.TableID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, entry)
}

// POST /waitlist/{entry_id}/decline
func (h *BookingHandler) DeclineOffer(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entry_id")
	if !validate.IsUUID(entryID) {
		response.Err(w, r, domain.ErrValidation("invalid entry id"))
		return
	}

	entry, err := h.svc.DeclineOffer(r.Context(), entryID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, entry)
}

// POST /tables/{table_id}/offer
// Offers the freed slot to the highest-priority eligible waitlist entry.
// A null offer means nobody on the list fits the slot.
func (h *BookingHandler) OfferNextForTable(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "table_id")
	if tableID == "" {
		response.Err(w, r, domain.ErrValidation("missing table id"))
		return
	}

	var in dto.OfferNextReq
	if err := validate.DecodeJSON(r, &in); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid request body"))
		return
	}

	entry, err := h.svc.OfferNextForTable(r.Context(), tableID, in.Date, in.Time)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]any{"offer": entry})
}

// POST /waitlist/expire
// Idempotent sweep; reports how many entries moved to expired.
func (h *BookingHandler) ExpireWaitlist(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.ExpireWaitlist(r.Context())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]int{"expired": n})
}

// POST /reservations/{reservation_id}/release
func (h *BookingHandler) ReleaseReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reservation_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidation("invalid reservation id"))
		return
	}

	var in dto.ReleaseReq
	if err := validate.DecodeJSON(r, &in); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid request body"))
		return
	}

	released, offered, err := h.svc.ReleaseReservation(r.Context(), id, domain.ReservationStatus(in.Status))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]any{
		"reservation": released,
		"offered":     offered,
	})
}
