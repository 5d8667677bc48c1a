package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"vehicledb/pkg/claims"
	"vehicledb/pkg/handlers"
	"vehicledb/pkg/vehicle"
	"vehicledb/pkg/vehicle/mocks"
)

const niceVehicleID = "9b2f7f0e-61a4-4a8e-9d0b-3c3f0a1d2e4f"

var (
	defaultVars   = map[string]string{"vehicleId": niceVehicleID}
	defaultClaims = claims.New(claims.User{EmailAddress: "a@b.com", ID: "user123"}, "sid", time.Now(), time.Hour)
)

func setDefaultUserClaims(req *http.Request) *http.Request {
	return req.WithContext(claims.WithClaims(req.Context(), defaultClaims))
}

func newVehicleHandler(t *testing.T) (*handlers.VehicleHandler, *mocks.ServiceVehicle) {
	m := mocks.NewServiceVehicle(t)
	return handlers.NewVehicleHandler(m, slog.Default()), m
}

func TestListVehicles(t *testing.T) {
	t.Run("missing claims", func(t *testing.T) {
		handler, _ := newVehicleHandler(t)
		w := httptest.NewRecorder()

		handler.ListVehicles(w, httptest.NewRequest(http.MethodGet, "/v1/vehicles/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		m.On("List", mock.Anything, "user123").Return([]*vehicle.Vehicle{
			{ID: "v1", UserID: "user123", Year: 1999, Make: "Honda", Model: "Civic"},
		}, nil)
		w := httptest.NewRecorder()

		handler.ListVehicles(w, setDefaultUserClaims(httptest.NewRequest(http.MethodGet, "/v1/vehicles/", nil)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"vehicle_id":"v1","user_id":"user123","year":1999,"make":"Honda","model":"Civic"}]`, w.Body.String())
	})

	t.Run("empty list is an array", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		m.On("List", mock.Anything, "user123").Return([]*vehicle.Vehicle{}, nil)
		w := httptest.NewRecorder()

		handler.ListVehicles(w, setDefaultUserClaims(httptest.NewRequest(http.MethodGet, "/v1/vehicles/", nil)))

		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("service error", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		m.On("List", mock.Anything, "user123").Return(nil, errors.New("db down"))
		w := httptest.NewRecorder()

		handler.ListVehicles(w, setDefaultUserClaims(httptest.NewRequest(http.MethodGet, "/v1/vehicles/", nil)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCreateVehicle(t *testing.T) {
	newRequest := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/v1/vehicles/", bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
		return setDefaultUserClaims(r)
	}

	t.Run("invalid json", func(t *testing.T) {
		handler, _ := newVehicleHandler(t)
		w := httptest.NewRecorder()

		handler.CreateVehicle(w, newRequest(`{"year": }`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_request")
	})

	t.Run("invalid vehicle", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		m.On("Create", mock.Anything, "user123", 1700, "Cart", "Horse").Return(nil, vehicle.ErrInvalidInput)
		w := httptest.NewRecorder()

		handler.CreateVehicle(w, newRequest(`{"year":1700,"make":"Cart","model":"Horse"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_request")
	})

	t.Run("success", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		created := &vehicle.Vehicle{ID: niceVehicleID, UserID: "user123", Year: 1999, Make: "Honda", Model: "Civic"}
		m.On("Create", mock.Anything, "user123", 1999, "Honda", "Civic").Return(created, nil)
		w := httptest.NewRecorder()

		handler.CreateVehicle(w, newRequest(`{"year":1999,"make":"Honda","model":"Civic"}`))

		require.Equal(t, http.StatusOK, w.Code)
		var got vehicle.Vehicle
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, niceVehicleID, got.ID)
	})
}

func TestGetVehicle(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		m.On("Get", mock.Anything, "user123", niceVehicleID).Return(nil, vehicle.ErrNotFound)
		r := setDefaultUserClaims(mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), defaultVars))
		w := httptest.NewRecorder()

		handler.GetVehicle(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `{"error":"not_found"}`)
	})

	t.Run("success", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		m.On("Get", mock.Anything, "user123", niceVehicleID).Return(&vehicle.Vehicle{ID: niceVehicleID, Year: 2001}, nil)
		r := setDefaultUserClaims(mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), defaultVars))
		w := httptest.NewRecorder()

		handler.GetVehicle(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"year":2001`)
	})
}

func TestDeleteVehicle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		m.On("Delete", mock.Anything, "user123", niceVehicleID).Return(nil)
		r := setDefaultUserClaims(mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), defaultVars))
		w := httptest.NewRecorder()

		handler.DeleteVehicle(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("not owned", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		m.On("Delete", mock.Anything, "user123", niceVehicleID).Return(vehicle.ErrNotFound)
		r := setDefaultUserClaims(mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), defaultVars))
		w := httptest.NewRecorder()

		handler.DeleteVehicle(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		handler, m := newVehicleHandler(t)
		m.On("Delete", mock.Anything, "user123", niceVehicleID).Return(errors.New("db down"))
		r := setDefaultUserClaims(mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), defaultVars))
		w := httptest.NewRecorder()

		handler.DeleteVehicle(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
