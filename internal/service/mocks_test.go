package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ait-dev/patientcare/internal/domain/patient"
)

// Compile-time check that the mock satisfies the repository contract.
var _ patient.Repository = (*MockPatientRepository)(nil)

// MockPatientRepository is a hand-written mock: each method delegates to
// an optional func field so tests override only what they need.
type MockPatientRepository struct {
	InsertFunc                  func(ctx context.Context, p *patient.Patient) error
	FindByIDFunc                func(ctx context.Context, id int64) (*patient.Patient, error)
	UpdateFunc                  func(ctx context.Context, p *patient.Patient) error
	FindActiveFunc              func(ctx context.Context) ([]*patient.Patient, error)
	ExistsByInsuranceNumberFunc func(ctx context.Context, insuranceNumber string) (bool, error)
	CountActiveFunc             func(ctx context.Context) (int64, error)
	CountByGenderFunc           func(ctx context.Context, g patient.Gender) (int64, error)
	CountBornBeforeFunc         func(ctx context.Context, d patient.Date) (int64, error)
	SearchFunc                  func(ctx context.Context, f patient.Filter) ([]*patient.Patient, error)

	InsertCallCount int32
	ExistsCallCount int32
	UpdateCallCount int32
}

func (m *MockPatientRepository) Insert(ctx context.Context, p *patient.Patient) error {
	atomic.AddInt32(&m.InsertCallCount, 1)
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, p)
	}
	return nil
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id int64) (*patient.Patient, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockPatientRepository) Update(ctx context.Context, p *patient.Patient) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *MockPatientRepository) FindActive(ctx context.Context) ([]*patient.Patient, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockPatientRepository) ExistsByInsuranceNumber(ctx context.Context, insuranceNumber string) (bool, error) {
	atomic.AddInt32(&m.ExistsCallCount, 1)
	if m.ExistsByInsuranceNumberFunc != nil {
		return m.ExistsByInsuranceNumberFunc(ctx, insuranceNumber)
	}
	return false, nil
}

func (m *MockPatientRepository) CountActive(ctx context.Context) (int64, error) {
	if m.CountActiveFunc != nil {
		return m.CountActiveFunc(ctx)
	}
	return 0, nil
}

func (m *MockPatientRepository) CountByGender(ctx context.Context, g patient.Gender) (int64, error) {
	if m.CountByGenderFunc != nil {
		return m.CountByGenderFunc(ctx, g)
	}
	return 0, nil
}

func (m *MockPatientRepository) CountBornBefore(ctx context.Context, d patient.Date) (int64, error) {
	if m.CountBornBeforeFunc != nil {
		return m.CountBornBeforeFunc(ctx, d)
	}
	return 0, nil
}

func (m *MockPatientRepository) Search(ctx context.Context, f patient.Filter) ([]*patient.Patient, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, f)
	}
	return nil, nil
}
