package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"vehicledb/pkg/vehicle"
)

type NewVehicle struct {
	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

type VehicleHandler struct {
	Service vehicle.ServiceVehicle
	Logger  *slog.Logger
}

func NewVehicleHandler(service vehicle.ServiceVehicle, logger *slog.Logger) *VehicleHandler {
	return &VehicleHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	c, ok := getClaimsFromContext(w, r)
	if !ok {
		return
	}

	vehicles, err := h.Service.List(r.Context(), c.User.ID)
	if err != nil {
		h.Logger.Error("list vehicles", "error", err, "user", c.User.ID)
		writeError(w, http.StatusInternalServerError, typeError, codeInternal)
		return
	}

	writeJSON(w, h.Logger, vehicles)
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	c, ok := getClaimsFromContext(w, r)
	if !ok {
		return
	}

	var req NewVehicle
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	v, err := h.Service.Create(r.Context(), c.User.ID, req.Year, req.Make, req.Model)
	switch {
	case errors.Is(err, vehicle.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, typeError, codeInvalidRequest)
		return
	case err != nil:
		h.Logger.Error("create vehicle", "error", err, "user", c.User.ID)
		writeError(w, http.StatusInternalServerError, typeError, codeInternal)
		return
	}

	if ok := writeJSON(w, h.Logger, v); ok {
		h.Logger.Info("new vehicle created", "user", c.User.ID, muxVarVehicleID, v.ID)
	}
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	c, ok := getClaimsFromContext(w, r)
	if !ok {
		return
	}

	v, err := h.Service.Get(r.Context(), c.User.ID, mux.Vars(r)[muxVarVehicleID])
	if !h.checkLookup(w, err, "get vehicle") {
		return
	}

	writeJSON(w, h.Logger, v)
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	c, ok := getClaimsFromContext(w, r)
	if !ok {
		return
	}

	vehicleID := mux.Vars(r)[muxVarVehicleID]
	if !h.checkLookup(w, h.Service.Delete(r.Context(), c.User.ID, vehicleID), "delete vehicle") {
		return
	}

	h.Logger.Info("vehicle delete", "user", c.User.ID, muxVarVehicleID, vehicleID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *VehicleHandler) checkLookup(w http.ResponseWriter, err error, action string) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, vehicle.ErrNotFound):
		writeError(w, http.StatusNotFound, typeError, codeNotFound)
	default:
		h.Logger.Error(action, "error", err)
		writeError(w, http.StatusInternalServerError, typeError, codeInternal)
	}
	return false
}
