package util

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrAccessBlocked      = errors.New("exam access has been terminated")
	ErrExamClosed         = errors.New("exam is outside its time window")
	ErrAlreadySubmitted   = errors.New("exam already submitted")
	ErrAlreadyApplied     = errors.New("already applied for this job")
	ErrExamNotFound       = errors.New("exam not found")
	ErrJobNotFound        = errors.New("job posting not found")
	ErrSessionExpired     = errors.New("exam session expired, log in again")
	ErrWrongExam          = errors.New("not authorized for this exam")
	ErrEmptyPaper         = errors.New("exam paper has no questions")
)
