package course

import "errors"

var ErrNotEnrolled = errors.New("student not enrolled in course")
