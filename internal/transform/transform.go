// Package transform maps wire DTOs to persisted entities and back.
package transform

import (
	"fmt"
	"strings"
	"time"

	"hospital-medicine-api/internal/models"
	"hospital-medicine-api/pkg/dto"

	"github.com/shopspring/decimal"
)

// Mode controls how unparseable dates and prices are handled.
type Mode string

const (
	// Strict rejects bad dates and prices with a *ValidationError.
	Strict Mode = "strict"
	// Lenient replaces bad dates with the current time and bad prices with zero.
	Lenient Mode = "lenient"
)

// ParseMode converts a config value into a Mode, defaulting to Strict.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == Lenient {
		return Lenient
	}
	return Strict
}

const (
	dateOutputLayout = "2006-01-02T15:04:05.999999999"
	storagePrecision = time.Microsecond

	// Limits of the datetime(6) and decimal(19,4) columns.
	minYear     = 1000
	maxYear     = 9999
	priceScale  = 4
	priceDigits = 15
)

var priceLimit = decimal.New(1, priceDigits)

// Accepted local date-time layouts, interpreted as UTC.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// FieldError describes one request field that could not be parsed.
type FieldError struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// ValidationError lists every field of a request that failed to parse.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid request fields: " + strings.Join(names, ", ")
}

type Mapper struct {
	Mode Mode
	Now  func() time.Time
}

func NewMapper(mode Mode) *Mapper {
	return &Mapper{Mode: mode, Now: time.Now}
}

// ParseDate parses an ISO-8601 date-time. Values without an offset are UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return inRange(s, t.UTC().Truncate(storagePrecision))
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return inRange(s, t.Truncate(storagePrecision))
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO-8601 date-time", s)
}

func inRange(s string, t time.Time) (time.Time, error) {
	if y := t.Year(); y < minYear || y > maxYear {
		return time.Time{}, fmt.Errorf("%q is outside years %d to %d", s, minYear, maxYear)
	}
	return t, nil
}

// FormatDate renders t as a UTC local date-time, e.g. 2024-03-01T10:15:30.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateOutputLayout)
}

// ParsePrice parses an exact decimal with at most four fractional digits
// and an absolute value below 10^15.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a decimal number", s)
	}
	if !d.Equal(d.Truncate(priceScale)) {
		return decimal.Zero, fmt.Errorf("%q has more than %d fractional digits", s, priceScale)
	}
	if d.Abs().GreaterThanOrEqual(priceLimit) {
		return decimal.Zero, fmt.Errorf("%q is out of range", s)
	}
	return d, nil
}

func FormatPrice(d decimal.Decimal) string {
	return d.String()
}

// fieldParser collects parse failures for a single request.
type fieldParser struct {
	m      *Mapper
	failed []FieldError
}

func (p *fieldParser) date(field, value string) time.Time {
	t, err := ParseDate(value)
	if err == nil {
		return t
	}
	if p.m.Mode == Lenient {
		return p.m.Now().UTC().Truncate(storagePrecision)
	}
	p.failed = append(p.failed, FieldError{Field: field, Value: value, Reason: err.Error()})
	return time.Time{}
}

func (p *fieldParser) price(field, value string) decimal.Decimal {
	d, err := ParsePrice(value)
	if err == nil {
		return d
	}
	if p.m.Mode != Lenient {
		p.failed = append(p.failed, FieldError{Field: field, Value: value, Reason: err.Error()})
	}
	return decimal.Zero
}

func (p *fieldParser) err() error {
	if len(p.failed) == 0 {
		return nil
	}
	return &ValidationError{Fields: p.failed}
}

// ToDomain builds a new, unsaved hospital together with its new medicine.
func (m *Mapper) ToDomain(req dto.HospitalRequest) (models.Hospital, error) {
	var hospital models.Hospital
	if err := m.ApplyRequest(&hospital, req); err != nil {
		return models.Hospital{}, err
	}
	return hospital, nil
}

// ApplyRequest overwrites every mutable field of hospital and installs a
// brand-new medicine in place of the current one. The hospital is left
// untouched when the request does not parse.
func (m *Mapper) ApplyRequest(hospital *models.Hospital, req dto.HospitalRequest) error {
	p := &fieldParser{m: m}

	openDate := p.date("openDate", req.OpenDate)
	medicine := models.Medicine{
		Name:           req.Medicines.Name,
		Form:           req.Medicines.Form,
		Manufacturer:   req.Medicines.Manufacturer,
		ProductionDate: p.date("medicines.productionDate", req.Medicines.ProductionDate),
		Expiration:     p.date("medicines.expiration", req.Medicines.Expiration),
		Price:          p.price("medicines.price", req.Medicines.Price),
		IsPrescription: req.Medicines.IsPrescription,
	}
	if err := p.err(); err != nil {
		return err
	}

	if hospital.ID != 0 {
		id := hospital.ID
		medicine.HospitalID = &id
	}

	hospital.Name = req.Name
	hospital.Address = req.Address
	hospital.Profile = req.Profile
	hospital.OpenDate = openDate
	hospital.Departments = req.Departments
	hospital.Beds = req.Beds
	hospital.IsChildDept = req.IsChildDept
	hospital.Medicine = medicine
	return nil
}

func (m *Mapper) ToResponse(h models.Hospital) dto.HospitalResponse {
	return dto.HospitalResponse{
		ID:          h.ID,
		Name:        h.Name,
		Address:     h.Address,
		Profile:     h.Profile,
		OpenDate:    FormatDate(h.OpenDate),
		Departments: h.Departments,
		Beds:        h.Beds,
		IsChildDept: h.IsChildDept,
		Medicines:   medicineResponse(h.Medicine),
	}
}

func (m *Mapper) ToResponses(hospitals []models.Hospital) []dto.HospitalResponse {
	out := make([]dto.HospitalResponse, 0, len(hospitals))
	for _, h := range hospitals {
		out = append(out, m.ToResponse(h))
	}
	return out
}

func medicineResponse(med models.Medicine) dto.MedicineResponse {
	return dto.MedicineResponse{
		ID:             med.ID,
		Name:           med.Name,
		Form:           med.Form,
		Manufacturer:   med.Manufacturer,
		ProductionDate: FormatDate(med.ProductionDate),
		Expiration:     FormatDate(med.Expiration),
		Price:          FormatPrice(med.Price),
		IsPrescription: med.IsPrescription,
	}
}
