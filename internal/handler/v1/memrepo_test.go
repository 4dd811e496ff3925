package v1

import (
	"context"
	"sync"
	"time"

	"github.com/ait-dev/patientcare/internal/domain/patient"
)

// memRepo is an in-memory stand-in for the postgres repository with the
// same contract: insertion-ordered rows, active-only filtered reads,
// and duplicate detection against non-deleted rows.
type memRepo struct {
	mu   sync.Mutex
	seq  int64
	rows []*patient.Patient
}

var _ patient.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{}
}

func clone(p *patient.Patient) *patient.Patient {
	cp := *p
	return &cp
}

func (r *memRepo) Insert(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if !row.Deleted && row.InsuranceNumber == p.InsuranceNumber {
			return patient.ErrDuplicateInsurance
		}
	}

	r.seq++
	p.ID = r.seq
	p.CreatedAt = patient.DateTimeOf(time.Now())
	p.Deleted = false
	r.rows = append(r.rows, clone(p))
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id int64) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.ID == id {
			return clone(row), nil
		}
	}
	return nil, nil
}

func (r *memRepo) Update(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !p.Deleted {
		for _, row := range r.rows {
			if row.ID != p.ID && !row.Deleted && row.InsuranceNumber == p.InsuranceNumber {
				return patient.ErrDuplicateInsurance
			}
		}
	}

	for i, row := range r.rows {
		if row.ID == p.ID {
			updated := clone(p)
			updated.CreatedAt = row.CreatedAt
			r.rows[i] = updated
			return nil
		}
	}
	return nil
}

func (r *memRepo) FindActive(_ context.Context) ([]*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*patient.Patient
	for _, row := range r.rows {
		if !row.Deleted {
			out = append(out, clone(row))
		}
	}
	return out, nil
}

func (r *memRepo) ExistsByInsuranceNumber(_ context.Context, n string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if !row.Deleted && row.InsuranceNumber == n {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, row := range r.rows {
		if !row.Deleted {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) CountByGender(_ context.Context, g patient.Gender) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, row := range r.rows {
		if !row.Deleted && row.Gender == g {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) CountBornBefore(_ context.Context, d patient.Date) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, row := range r.rows {
		if !row.Deleted && row.DateOfBirth.Before(d.Time) {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) Search(_ context.Context, f patient.Filter) ([]*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*patient.Patient
	for _, row := range r.rows {
		if row.Deleted {
			continue
		}
		if f.Gender != nil && row.Gender != *f.Gender {
			continue
		}
		if f.BloodType != nil && row.BloodType != *f.BloodType {
			continue
		}
		if f.BornBefore != nil && row.DateOfBirth.After(f.BornBefore.Time) {
			continue
		}
		if f.BornAfter != nil && row.DateOfBirth.Before(f.BornAfter.Time) {
			continue
		}
		out = append(out, clone(row))
	}
	return out, nil
}
