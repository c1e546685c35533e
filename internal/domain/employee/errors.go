package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("name or id mismatch")
	ErrEmployeeNumberExists  = errors.New("employee number already registered")
	ErrInvalidFaceDescriptor = errors.New("face descriptor must contain exactly 128 finite values")
)
