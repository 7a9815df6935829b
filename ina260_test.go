package ina260

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockI2CBus is a mock implementation of I2CBus using testify/mock
type MockI2CBus struct {
	mock.Mock
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	if args.Get(0) != nil {
		// Copy mock data to buffer if provided
		if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
			copy(buffer, data)
		}
	}
	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestDevice(t *testing.T) (*INA260, *MockI2CBus) {
	bus := &MockI2CBus{}
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x00, 0x80, 0x00}).Return(nil).Once()
	dev, err := New(context.Background(), bus)
	assert.NoError(t, err)
	return dev, bus
}

func TestINA260_InitWritesResetStrobe(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.AssertExpectations(t)
	// the shadow starts from the documented default word
	assert.Equal(t, uint16(0x0127), dev.Config())
}

func TestINA260_InitFailure(t *testing.T) {
	bus := &MockI2CBus{}
	boom := errors.New("nack")
	bus.On("WriteToAddr", mock.Anything, byte(0x45), mock.Anything).Return(boom)
	dev, err := NewWithAddress(context.Background(), bus, 0x45)
	assert.Nil(t, dev)
	assert.ErrorIs(t, err, boom)
}

func TestINA260_ConfigWriteFraming(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x00, 0x12, 0x34}).Return(nil).Once()
	assert.NoError(t, dev.writeRegister(context.Background(), regConfig, 0x1234))
	bus.AssertExpectations(t)
}

func TestINA260_SettersMergeIntoShadow(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()

	// default 0x0127 with averaging set to 4 samples
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x00, 0x03, 0x27}).Return(nil).Once()
	assert.NoError(t, dev.SetAveragingMode(ctx, Avg4))
	assert.Equal(t, uint16(0x0327), dev.Config())

	// changing the mode leaves the other fields untouched
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x00, 0x03, 0x20}).Return(nil).Once()
	assert.NoError(t, dev.SetOperatingMode(ctx, ModeShutdown))
	assert.Equal(t, uint16(0x0320), dev.Config())

	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x00, 0x03, 0x38}).Return(nil).Once()
	assert.NoError(t, dev.SetShuntConvTime(ctx, ShuntConvTime8244us))
	assert.Equal(t, uint16(0x0338), dev.Config())

	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x00, 0x02, 0x38}).Return(nil).Once()
	assert.NoError(t, dev.SetBusConvTime(ctx, BusConvTime140us))
	assert.Equal(t, uint16(0x0238), dev.Config())

	bus.AssertExpectations(t)
}

func TestINA260_FailedWriteLeavesShadow(t *testing.T) {
	dev, bus := newTestDevice(t)
	before := dev.Config()

	boom := errors.New("bus stuck")
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, mock.Anything).Return(boom).Once()
	err := dev.SetAveragingMode(context.Background(), Avg1024)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, dev.Config())

	// a retry with the same value starts from the unchanged shadow
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x00, 0x0F, 0x27}).Return(nil).Once()
	assert.NoError(t, dev.SetAveragingMode(context.Background(), Avg1024))
	assert.Equal(t, uint16(0x0F27), dev.Config())
	bus.AssertExpectations(t)
}

func TestINA260_DieID(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0xFF}).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return([]byte{0x22, 0x70}, nil).Once()

	id, rev, err := dev.DieID(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x227), id)
	assert.Equal(t, uint16(0x0), rev)
	bus.AssertExpectations(t)
}

func TestINA260_Connected(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0xFF}).Return(nil)
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return([]byte{0x22, 0x70}, nil).Once()
	assert.True(t, dev.Connected(context.Background()))

	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return([]byte{0x00, 0x00}, nil).Once()
	assert.False(t, dev.Connected(context.Background()))
}

func TestINA260_ManufacturerID(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0xFE}).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return([]byte{0x54, 0x49}, nil).Once()

	id, err := dev.ManufacturerID(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x5449), id)
}

func TestINA260_CurrentIsSigned(t *testing.T) {
	dev, bus := newTestDevice(t)
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x01}).Return(nil)
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return([]byte{0xFF, 0xFF}, nil).Once()

	raw, err := dev.CurrentRaw(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int16(-1), raw)

	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return([]byte{0xFF, 0xFF}, nil).Once()
	uA, err := dev.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(-1250), uA)
}

func TestINA260_MeasurementReads(t *testing.T) {
	dev, bus := newTestDevice(t)
	ctx := context.Background()

	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x02}).Return(nil)
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return([]byte{0x03, 0x20}, nil).Times(3)

	raw, err := dev.VoltageRaw(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint16(800), raw)

	uV, err := dev.Voltage(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint32(1_000_000), uV)

	whole, rest, err := dev.VoltageSplit(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), whole)
	assert.Equal(t, uint32(0), rest)

	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x03}).Return(nil)
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return([]byte{0x00, 0x64}, nil).Times(2)

	mW, err := dev.Power(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint32(1000), mW)

	pWhole, pRest, err := dev.PowerSplit(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), pWhole)
	assert.Equal(t, uint32(0), pRest)

	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x01}).Return(nil)
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return([]byte{0x06, 0x40}, nil).Once()

	cWhole, cRest, err := dev.CurrentSplit(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int8(2), cWhole)
	assert.Equal(t, uint32(0), cRest)
}

func TestINA260_ReadErrorPropagates(t *testing.T) {
	dev, bus := newTestDevice(t)

	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x02}).Return(ErrBusBusy).Once()
	_, err := dev.Voltage(context.Background())
	assert.ErrorIs(t, err, ErrBusBusy)

	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{0x02}).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, mock.Anything).Return(nil, ErrBusBusy).Once()
	_, err = dev.Voltage(context.Background())
	assert.ErrorIs(t, err, ErrBusBusy)
}
