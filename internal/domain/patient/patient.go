package patient

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown members at decode time so that a bad
// value surfaces as a malformed request, not a validation failure.
// An empty or null value decodes to the zero Gender and is left for
// the validator to report as missing.
func (g *Gender) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*g = ""
		return nil
	}
	v := Gender(s)
	if !v.IsValid() {
		return fmt.Errorf("invalid gender %q: must be one of MALE, FEMALE, OTHER", s)
	}
	*g = v
	return nil
}

type BloodType string

const (
	BloodTypeOPos  BloodType = "O_POS"
	BloodTypeONeg  BloodType = "O_NEG"
	BloodTypeAPos  BloodType = "A_POS"
	BloodTypeANeg  BloodType = "A_NEG"
	BloodTypeBPos  BloodType = "B_POS"
	BloodTypeBNeg  BloodType = "B_NEG"
	BloodTypeABPos BloodType = "AB_POS"
	BloodTypeABNeg BloodType = "AB_NEG"
)

func (b BloodType) IsValid() bool {
	switch b {
	case BloodTypeOPos, BloodTypeONeg, BloodTypeAPos, BloodTypeANeg,
		BloodTypeBPos, BloodTypeBNeg, BloodTypeABPos, BloodTypeABNeg:
		return true
	}
	return false
}

func (b *BloodType) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*b = ""
		return nil
	}
	v := BloodType(s)
	if !v.IsValid() {
		return fmt.Errorf("invalid blood type %q", s)
	}
	*b = v
	return nil
}

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. On the wire it is
// always YYYY-MM-DD; in the database it maps to a DATE column.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	*d = Date{t}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	case nil:
		*d = Date{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) scanString(s string) error {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("scanning date %q: %w", s, err)
	}
	*d = Date{t}
	return nil
}

const dateTimeLayout = "2006-01-02T15:04:05.999999"

// DateTime is a timestamp rendered without a zone designator, matching
// the created-at wire format YYYY-MM-DDTHH:MM:SS(.ffffff).
type DateTime struct {
	time.Time
}

func DateTimeOf(t time.Time) DateTime {
	return DateTime{t}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = DateTime{}
		return nil
	}
	// time.Parse accepts an optional fractional second after the
	// seconds element even when the layout omits it.
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*d = DateTime{t}
	return nil
}

func (d DateTime) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *DateTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateTime{v}
		return nil
	case nil:
		*d = DateTime{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into DateTime", src)
}

type Patient struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt DateTime `gorm:"column:created_at;type:timestamp;not null" json:"createdAt"`

	FirstName       string    `gorm:"column:first_name;type:varchar(100);not null" json:"firstName"`
	LastName        string    `gorm:"column:last_name;type:varchar(100);not null" json:"lastName"`
	DateOfBirth     Date      `gorm:"column:date_of_birth;type:date;not null" json:"dateOfBirth"`
	Gender          Gender    `gorm:"column:gender;type:varchar(10);not null" json:"gender"`
	InsuranceNumber string    `gorm:"column:insurance_number;type:varchar(50);not null" json:"insuranceNumber"`
	BloodType       BloodType `gorm:"column:blood_type;type:varchar(10);not null" json:"bloodType"`

	Deleted bool `gorm:"column:deleted;not null;default:false" json:"deleted"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Age reports full years between the date of birth and the given date.
func (p *Patient) Age(at time.Time) int {
	years := at.Year() - p.DateOfBirth.Year()
	if at.Month() < p.DateOfBirth.Month() ||
		(at.Month() == p.DateOfBirth.Month() && at.Day() < p.DateOfBirth.Day()) {
		years--
	}
	return years
}

func (p *Patient) IsActive() bool {
	return !p.Deleted
}

// Filter narrows a search to active patients matching every set field.
// Nil fields contribute no predicate.
type Filter struct {
	Gender     *Gender
	BloodType  *BloodType
	BornBefore *Date // date of birth <= BornBefore
	BornAfter  *Date // date of birth >= BornAfter
}
