package schedule

import "errors"

var (
	ErrShiftTemplateNotFound   = errors.New("shift template not found")
	ErrShiftTemplateNameExists = errors.New("shift template with this name already exists")
	ErrAssignmentNotFound      = errors.New("shift assignment not found")
)
