package api

import (
	"net/http"

	"parkinglot/internal/entities"
	"parkinglot/internal/service"

	"github.com/gorilla/mux"
)

type BlockHandler struct {
	Service *service.BlockService
}

func NewBlockHandler(svc *service.BlockService) *BlockHandler {
	return &BlockHandler{Service: svc}
}

func (h *BlockHandler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateBlockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	block, err := h.Service.CreateBlock(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewBlockResponse(block))
}

func (h *BlockHandler) ListAvailabilities(w http.ResponseWriter, r *http.Request) {
	vehicleType := mux.Vars(r)["vehicle_type"]
	list, err := h.Service.ListAvailabilityByVehicleType(r.Context(), vehicleType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type ParkingHandler struct {
	Reservations *service.ReservationService
	Checkouts    *service.CheckoutService
}

func NewParkingHandler(reservations *service.ReservationService, checkouts *service.CheckoutService) *ParkingHandler {
	return &ParkingHandler{Reservations: reservations, Checkouts: checkouts}
}

func (h *ParkingHandler) Enter(w http.ResponseWriter, r *http.Request) {
	var req entities.EnterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.Reservations.Enter(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewParkingSessionResponse(session))
}

func (h *ParkingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]
	invoice, err := h.Checkouts.Checkout(r.Context(), vehicleID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}
