package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ait-dev/patientcare/internal/domain/patient"
	"github.com/ait-dev/patientcare/pkg/metrics"
	"gorm.io/gorm"
)

// mutableColumns are the only columns Update is allowed to touch.
// id and created_at stay immutable after the first insert.
var mutableColumns = []string{
	"first_name", "last_name", "date_of_birth",
	"gender", "insurance_number", "blood_type", "deleted",
}

type PatientRepository struct {
	db *gorm.DB
	mc *metrics.Collector
}

func NewPatientRepository(db *gorm.DB, mc *metrics.Collector) *PatientRepository {
	return &PatientRepository{db: db, mc: mc}
}

var _ patient.Repository = (*PatientRepository)(nil)

func (r *PatientRepository) Insert(ctx context.Context, p *patient.Patient) error {
	defer r.observe("insert")()

	p.ID = 0
	p.CreatedAt = patient.DateTimeOf(time.Now())
	p.Deleted = false

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return patient.ErrDuplicateInsurance
		}
		return fmt.Errorf("inserting patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) FindByID(ctx context.Context, id int64) (*patient.Patient, error) {
	defer r.observe("find_by_id")()

	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding patient %d: %w", id, err)
	}
	return &p, nil
}

func (r *PatientRepository) Update(ctx context.Context, p *patient.Patient) error {
	defer r.observe("update")()

	err := r.db.WithContext(ctx).
		Model(p).
		Select(mutableColumns).
		Updates(p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return patient.ErrDuplicateInsurance
		}
		return fmt.Errorf("updating patient %d: %w", p.ID, err)
	}
	return nil
}

func (r *PatientRepository) FindActive(ctx context.Context) ([]*patient.Patient, error) {
	defer r.observe("find_active")()

	var patients []*patient.Patient
	err := r.db.WithContext(ctx).
		Where("deleted = false").
		Order("id").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("listing active patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) ExistsByInsuranceNumber(ctx context.Context, insuranceNumber string) (bool, error) {
	defer r.observe("exists_by_insurance")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("deleted = false AND insurance_number = ?", insuranceNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking insurance number: %w", err)
	}
	return count > 0, nil
}

func (r *PatientRepository) CountActive(ctx context.Context) (int64, error) {
	defer r.observe("count_active")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("deleted = false").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting active patients: %w", err)
	}
	return count, nil
}

func (r *PatientRepository) CountByGender(ctx context.Context, g patient.Gender) (int64, error) {
	defer r.observe("count_by_gender")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("deleted = false AND gender = ?", g).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting patients by gender: %w", err)
	}
	return count, nil
}

func (r *PatientRepository) CountBornBefore(ctx context.Context, d patient.Date) (int64, error) {
	defer r.observe("count_born_before")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("deleted = false AND date_of_birth < ?", d).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting patients born before %s: %w", d, err)
	}
	return count, nil
}

// Search builds the conjunction clause by clause; an unset filter field
// adds no predicate at all.
func (r *PatientRepository) Search(ctx context.Context, f patient.Filter) ([]*patient.Patient, error) {
	defer r.observe("search")()

	q := r.db.WithContext(ctx).Where("deleted = false")
	if f.Gender != nil {
		q = q.Where("gender = ?", *f.Gender)
	}
	if f.BloodType != nil {
		q = q.Where("blood_type = ?", *f.BloodType)
	}
	if f.BornBefore != nil {
		q = q.Where("date_of_birth <= ?", *f.BornBefore)
	}
	if f.BornAfter != nil {
		q = q.Where("date_of_birth >= ?", *f.BornAfter)
	}

	var patients []*patient.Patient
	if err := q.Order("id").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("searching patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) observe(operation string) func() {
	if r.mc == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		r.mc.DBQueryDuration.
			WithLabelValues(operation, patient.Patient{}.TableName()).
			Observe(time.Since(start).Seconds())
	}
}
