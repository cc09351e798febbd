package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hotel-pms/services"
)

type Revalidator struct{ mock.Mock }

func (m *Revalidator) Invalidate(hotelID uuid.UUID, views ...services.View) {
	args := make([]any, 0, len(views)+1)
	args = append(args, hotelID)
	for _, v := range views {
		args = append(args, v)
	}
	m.Called(args...)
}

func (m *Revalidator) Version(hotelID uuid.UUID, view services.View) uint64 {
	args := m.Called(hotelID, view)
	return args.Get(0).(uint64)
}

func (m *Revalidator) ETag(hotelID uuid.UUID, view services.View, scope string) string {
	args := m.Called(hotelID, view, scope)
	return args.String(0)
}
