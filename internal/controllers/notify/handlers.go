package notify

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/qidlabs/flightcapacity/internal/flightquery"
	"github.com/qidlabs/flightcapacity/internal/log"
	"github.com/qidlabs/flightcapacity/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the notification API
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// statusResponse is the fixed response shape of the notification endpoints
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// updatePayload is the notification body sent by the scheduling system.
// Every key is optional; missing keys default to the empty string, except
// the date which defaults to today.
type updatePayload struct {
	FlightNo          string `json:"flight_no"`
	FlightDate        string `json:"flight_date"`
	FlightOrigin      string `json:"flight_origin"`
	FlightDestination string `json:"flight_destination"`
}

// UpdateData handles POST /update-data: it overwrites the flight query
// store with the received tuple. The next refresh tick picks it up.
func (h *Handlers) UpdateData(w http.ResponseWriter, req *http.Request) {
	var payload updatePayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		h.sendStatus(w, http.StatusBadRequest, "error", "could not parse request body: "+err.Error())
		return
	}

	date := flightquery.DateOnly(time.Now())
	if payload.FlightDate != "" {
		parsed, err := flightquery.ParseDate(payload.FlightDate)
		if err != nil {
			h.sendStatus(w, http.StatusBadRequest, "error", err.Error())
			return
		}
		date = parsed
	}

	query := flightquery.FlightQuery{
		Number:      payload.FlightNo,
		Date:        date,
		Origin:      payload.FlightOrigin,
		Destination: payload.FlightDestination,
	}
	h.controller.store.Set(query)

	notificationID := uuid.New().String()
	log.Infof("received flight notification %s: flight=%s date=%s origin=%s destination=%s",
		notificationID, query.Number, query.Date.Format("2006-01-02"), query.Origin, query.Destination)

	h.sendStatus(w, http.StatusOK, "success", "Data received successfully")
}

// ResetData handles POST /reset-data: it restores the default empty query
func (h *Handlers) ResetData(w http.ResponseWriter, req *http.Request) {
	h.controller.store.Reset()
	log.Info("flight query store reset to defaults")
	h.sendStatus(w, http.StatusOK, "success", "Data reset successfully")
}

// GetChart handles GET /chart: it serves the most recently rendered
// chart result. JSON by default, MessagePack via ?format=msgpack.
func (h *Handlers) GetChart(w http.ResponseWriter, req *http.Request) {
	result := h.controller.results.Latest()

	if err := h.formatter.WriteResponse(w, req, result, nil); err != nil {
		log.Errorf("error encoding chart result: %v", err)
	}
}

// GetStatus handles GET /api/status
func (h *Handlers) GetStatus(w http.ResponseWriter, req *http.Request) {
	status := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"message":   "Flight capacity dashboard is running",
	}

	if err := h.formatter.WriteResponse(w, req, status, nil); err != nil {
		log.Errorf("error encoding status response: %v", err)
	}
}

func (h *Handlers) sendStatus(w http.ResponseWriter, code int, status, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(statusResponse{Status: status, Message: message}); err != nil {
		log.Errorf("error encoding status response: %v", err)
	}
}
