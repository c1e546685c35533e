package employee

import (
	"math"
	"strings"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName       string  `json:"nama"`
	EmployeeNumber string  `json:"nip"`
	Role           string  `json:"jabatan"`
	Team           *string `json:"tim,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FullName = strings.TrimSpace(r.FullName)
	r.EmployeeNumber = strings.TrimSpace(r.EmployeeNumber)
	r.Role = strings.TrimSpace(r.Role)
	r.Team = trimOptional(r.Team)

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "nama", Message: "nama is required"})
	} else if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{Field: "nama", Message: "nama must not exceed 255 characters"})
	}

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{Field: "nip", Message: "nip is required"})
	} else if !validator.IsValidEmployeeNumber(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{Field: "nip", Message: "nip may only contain letters, digits, dots and dashes"})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "jabatan", Message: "jabatan is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest patches an employee. Nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	ID             string  `json:"-"`
	FullName       *string `json:"nama,omitempty"`
	EmployeeNumber *string `json:"nip,omitempty"`
	Role           *string `json:"jabatan,omitempty"`
	Team           *string `json:"tim,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FullName = trimOptional(r.FullName)
	r.EmployeeNumber = trimOptional(r.EmployeeNumber)
	r.Role = trimOptional(r.Role)
	r.Team = trimOptional(r.Team)

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "nama", Message: "nama cannot be empty"})
	}
	if r.EmployeeNumber != nil && !validator.IsValidEmployeeNumber(*r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{Field: "nip", Message: "nip may only contain letters, digits, dots and dashes"})
	}
	if r.Role != nil && validator.IsEmpty(*r.Role) {
		errs = append(errs, validator.ValidationError{Field: "jabatan", Message: "jabatan cannot be empty"})
	}
	if r.FullName == nil && r.EmployeeNumber == nil && r.Role == nil && r.Team == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field must be provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateFaceRequest enrolls a descriptor. An empty descriptor clears the enrollment.
type UpdateFaceRequest struct {
	ID         string    `json:"-"`
	Descriptor []float64 `json:"descriptor"`
}

func (r *UpdateFaceRequest) Validate() error {
	if len(r.Descriptor) == 0 {
		return nil
	}
	if len(r.Descriptor) != DescriptorLength {
		return ErrInvalidFaceDescriptor
	}
	for _, v := range r.Descriptor {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidFaceDescriptor
		}
	}
	return nil
}

type EmployeeFilter struct {
	Search *string `json:"search,omitempty"` // name, role or team
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}
	f.Search = trimOptional(f.Search)
	if f.Search != nil && *f.Search == "" {
		f.Search = nil
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"nama"`
	EmployeeNumber string  `json:"nip"`
	Role           string  `json:"jabatan"`
	Team           *string `json:"tim,omitempty"`
	HasFace        bool    `json:"has_face"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}

// FaceResponse is one entry of the kiosk's face matching set.
type FaceResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"nama"`
	EmployeeNumber string    `json:"nip"`
	Descriptor     []float64 `json:"descriptor"`
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
