package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"vehicledb/pkg/vehicle"
)

// ServiceVehicle is a mock type for the vehicle.ServiceVehicle type.
type ServiceVehicle struct {
	mock.Mock
}

func (_m *ServiceVehicle) List(ctx context.Context, userID string) ([]*vehicle.Vehicle, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*vehicle.Vehicle
	if rf, ok := ret.Get(0).(func(context.Context, string) []*vehicle.Vehicle); ok {
		r0 = rf(ctx, userID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*vehicle.Vehicle)
	}
	return r0, ret.Error(1)
}

func (_m *ServiceVehicle) Create(ctx context.Context, userID string, year int, vehicleMake, model string) (*vehicle.Vehicle, error) {
	ret := _m.Called(ctx, userID, year, vehicleMake, model)

	var r0 *vehicle.Vehicle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*vehicle.Vehicle)
	}
	return r0, ret.Error(1)
}

func (_m *ServiceVehicle) Get(ctx context.Context, userID, id string) (*vehicle.Vehicle, error) {
	ret := _m.Called(ctx, userID, id)

	var r0 *vehicle.Vehicle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*vehicle.Vehicle)
	}
	return r0, ret.Error(1)
}

func (_m *ServiceVehicle) Delete(ctx context.Context, userID, id string) error {
	ret := _m.Called(ctx, userID, id)
	return ret.Error(0)
}

// NewServiceVehicle registers a cleanup that asserts expectations.
func NewServiceVehicle(t interface {
	mock.TestingT
	Cleanup(func())
}) *ServiceVehicle {
	m := &ServiceVehicle{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
