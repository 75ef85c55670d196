package quality

import (
	"context"
	"time"

	"github.com/b3erp/backend/internal/domain/quality"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDefectCodeRepository is a mock implementation of DefectCodeRepository
type MockDefectCodeRepository struct {
	mock.Mock
}

func (m *MockDefectCodeRepository) FindByCode(ctx context.Context, code string) (*quality.DefectCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quality.DefectCode), args.Error(1)
}

func (m *MockDefectCodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quality.DefectCode, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quality.DefectCode), args.Error(1)
}

func (m *MockDefectCodeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDefectCodeRepository) Save(ctx context.Context, code *quality.DefectCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockDefectCodeRepository) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockDefectCodeRepository) InsertIfAbsent(ctx context.Context, code *quality.DefectCode) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockInspectionRepository is a mock implementation of InspectionRepository
type MockInspectionRepository struct {
	mock.Mock
}

func (m *MockInspectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*quality.Inspection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quality.Inspection), args.Error(1)
}

func (m *MockInspectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quality.Inspection, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quality.Inspection), args.Error(1)
}

func (m *MockInspectionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInspectionRepository) Save(ctx context.Context, inspection *quality.Inspection) error {
	args := m.Called(ctx, inspection)
	return args.Error(0)
}

func (m *MockInspectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInspectionRepository) DeleteAttachment(ctx context.Context, inspectionID, attachmentID uuid.UUID) error {
	args := m.Called(ctx, inspectionID, attachmentID)
	return args.Error(0)
}

type MockNumberGenerator struct {
	mock.Mock
}

func (m *MockNumberGenerator) Next(ctx context.Context, seriesCode string) (string, error) {
	args := m.Called(ctx, seriesCode)
	return args.String(0), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PresignUpload(ctx context.Context, key, contentType string) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) PresignDownload(ctx context.Context, key, fileName string) (string, time.Time, error) {
	args := m.Called(ctx, key, fileName)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// lockerFunc adapts a function to RunLocker
type lockerFunc func(ctx context.Context, key string, fn func(context.Context) error) error

func (f lockerFunc) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	return f(ctx, key, fn)
}
