package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ait-dev/patientcare/internal/domain/patient"
	"github.com/ait-dev/patientcare/pkg/metrics"
	"go.uber.org/zap"
)

// WritePatientCommand holds the six business fields a caller may set on
// create or update. Identity, creation time, and the deleted flag are
// never taken from the caller.
type WritePatientCommand struct {
	FirstName       string
	LastName        string
	DateOfBirth     patient.Date
	Gender          patient.Gender
	InsuranceNumber string
	BloodType       patient.BloodType
}

// SearchQuery is the external search surface. Age bounds are converted
// to birth-date bounds against the service clock; nil means no bound.
type SearchQuery struct {
	Gender    *patient.Gender
	BloodType *patient.BloodType
	AgeFrom   *int
	AgeTo     *int
}

// Statistics is the fixed five-counter summary.
type Statistics struct {
	TotalPatients int64 `json:"totalPatients"`
	MaleCount     int64 `json:"maleCount"`
	FemaleCount   int64 `json:"femaleCount"`
	OtherCount    int64 `json:"otherCount"`
	OlderThan60   int64 `json:"olderThan60"`
}

type PatientService struct {
	repo patient.Repository
	log  *zap.Logger
	mc   *metrics.Collector
	now  func() time.Time
}

type Option func(*PatientService)

// WithClock fixes the service clock; tests pin it for deterministic
// age and date-of-birth arithmetic.
func WithClock(now func() time.Time) Option {
	return func(s *PatientService) {
		s.now = now
	}
}

func NewPatientService(repo patient.Repository, log *zap.Logger, mc *metrics.Collector, opts ...Option) *PatientService {
	s := &PatientService{
		repo: repo,
		log:  log,
		mc:   mc,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PatientService) GetAll(ctx context.Context) ([]*patient.Patient, error) {
	patients, err := s.repo.FindActive(ctx)
	if err != nil {
		s.log.Error("failed to list patients", zap.Error(err))
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	if patients == nil {
		patients = []*patient.Patient{}
	}
	return patients, nil
}

// GetByID hides logically deleted rows: a row with the deleted flag set
// is indistinguishable from a missing one.
func (s *PatientService) GetByID(ctx context.Context, id int64) (*patient.Patient, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to fetch patient", zap.Int64("patient_id", id), zap.Error(err))
		return nil, fmt.Errorf("fetching patient %d: %w", id, err)
	}
	if p == nil || p.Deleted {
		s.log.Warn("patient not found", zap.Int64("patient_id", id))
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (s *PatientService) Create(ctx context.Context, cmd *WritePatientCommand) (*patient.Patient, error) {
	today := patient.DateOf(s.now())

	if violations := validateWriteCommand(cmd, today); len(violations) > 0 {
		return nil, &ValidationError{Fields: violations}
	}

	insuranceNumber := strings.TrimSpace(cmd.InsuranceNumber)

	exists, err := s.repo.ExistsByInsuranceNumber(ctx, insuranceNumber)
	if err != nil {
		s.log.Error("failed to check insurance number uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if exists {
		s.log.Warn("duplicate insurance number", zap.String("insurance_number", insuranceNumber))
		return nil, patient.ErrDuplicateInsurance
	}

	p := &patient.Patient{
		FirstName:       strings.TrimSpace(cmd.FirstName),
		LastName:        strings.TrimSpace(cmd.LastName),
		DateOfBirth:     cmd.DateOfBirth,
		Gender:          cmd.Gender,
		InsuranceNumber: insuranceNumber,
		BloodType:       cmd.BloodType,
	}

	// A concurrent insert can slip past the pre-check; the partial
	// unique index reports it as the same duplicate error.
	if err := s.repo.Insert(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, err
	}

	if s.mc != nil {
		s.mc.PatientsCreatedTotal.Inc()
	}
	s.log.Info("patient created",
		zap.Int64("patient_id", p.ID),
		zap.String("name", p.FullName()),
	)
	return p, nil
}

func (s *PatientService) Update(ctx context.Context, id int64, cmd *WritePatientCommand) (*patient.Patient, error) {
	today := patient.DateOf(s.now())

	if violations := validateWriteCommand(cmd, today); len(violations) > 0 {
		return nil, &ValidationError{Fields: violations}
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	insuranceNumber := strings.TrimSpace(cmd.InsuranceNumber)
	if insuranceNumber != existing.InsuranceNumber {
		exists, err := s.repo.ExistsByInsuranceNumber(ctx, insuranceNumber)
		if err != nil {
			s.log.Error("failed to check insurance number uniqueness", zap.Error(err))
			return nil, fmt.Errorf("checking uniqueness: %w", err)
		}
		if exists {
			s.log.Warn("duplicate insurance number on update",
				zap.Int64("patient_id", id),
				zap.String("insurance_number", insuranceNumber),
			)
			return nil, patient.ErrDuplicateInsurance
		}
	}

	existing.FirstName = strings.TrimSpace(cmd.FirstName)
	existing.LastName = strings.TrimSpace(cmd.LastName)
	existing.DateOfBirth = cmd.DateOfBirth
	existing.Gender = cmd.Gender
	existing.InsuranceNumber = insuranceNumber
	existing.BloodType = cmd.BloodType

	if err := s.repo.Update(ctx, existing); err != nil {
		s.log.Error("failed to update patient", zap.Int64("patient_id", id), zap.Error(err))
		return nil, err
	}

	s.log.Info("patient updated", zap.Int64("patient_id", id))
	return existing, nil
}

// SoftDelete marks the row deleted instead of removing it. A second
// call on the same id fails with not-found because the row is already
// hidden from every read path.
func (s *PatientService) SoftDelete(ctx context.Context, id int64) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	p.Deleted = true
	if err := s.repo.Update(ctx, p); err != nil {
		s.log.Error("failed to soft-delete patient", zap.Int64("patient_id", id), zap.Error(err))
		return err
	}

	if s.mc != nil {
		s.mc.PatientsDeletedTotal.Inc()
	}
	s.log.Info("patient soft-deleted", zap.Int64("patient_id", id))
	return nil
}

func (s *PatientService) Search(ctx context.Context, q SearchQuery) ([]*patient.Patient, error) {
	today := s.now()

	f := patient.Filter{
		Gender:    q.Gender,
		BloodType: q.BloodType,
	}
	// A maximum age caps how far back a birth date may lie; a minimum
	// age caps how recent it may be. ageFrom > ageTo therefore derives
	// an empty date interval and an empty result.
	if q.AgeTo != nil {
		d := patient.DateOf(today.AddDate(-*q.AgeTo, 0, 0))
		f.BornAfter = &d
	}
	if q.AgeFrom != nil {
		d := patient.DateOf(today.AddDate(-*q.AgeFrom, 0, 0))
		f.BornBefore = &d
	}

	s.log.Debug("searching patients",
		zap.Any("gender", q.Gender),
		zap.Any("blood_type", q.BloodType),
		zap.Any("age_from", q.AgeFrom),
		zap.Any("age_to", q.AgeTo),
	)

	patients, err := s.repo.Search(ctx, f)
	if err != nil {
		s.log.Error("failed to search patients", zap.Error(err))
		return nil, fmt.Errorf("searching patients: %w", err)
	}
	if patients == nil {
		patients = []*patient.Patient{}
	}
	return patients, nil
}

func (s *PatientService) Statistics(ctx context.Context) (*Statistics, error) {
	total, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting patients: %w", err)
	}
	male, err := s.repo.CountByGender(ctx, patient.GenderMale)
	if err != nil {
		return nil, fmt.Errorf("counting male patients: %w", err)
	}
	female, err := s.repo.CountByGender(ctx, patient.GenderFemale)
	if err != nil {
		return nil, fmt.Errorf("counting female patients: %w", err)
	}
	other, err := s.repo.CountByGender(ctx, patient.GenderOther)
	if err != nil {
		return nil, fmt.Errorf("counting other patients: %w", err)
	}
	cutoff := patient.DateOf(s.now().AddDate(-60, 0, 0))
	olderThan60, err := s.repo.CountBornBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("counting patients older than 60: %w", err)
	}

	return &Statistics{
		TotalPatients: total,
		MaleCount:     male,
		FemaleCount:   female,
		OtherCount:    other,
		OlderThan60:   olderThan60,
	}, nil
}
