package employee

import (
	"time"
)

type Employee struct {
	ID             string
	FullName       string
	EmployeeNumber string
	Role           string
	Team           *string
	FaceDescriptor []float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasFace reports whether a face descriptor has been enrolled.
func (e Employee) HasFace() bool {
	return len(e.FaceDescriptor) > 0
}

// DescriptorLength is the size of a face-api.js face descriptor.
const DescriptorLength = 128
