package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
	ErrJobNotFound         = errors.New("job not found")
	ErrAnalysisNotFound    = errors.New("analysis not found")
	ErrCandidateNotFound   = errors.New("candidate document not found")
	ErrCoverLetterNotFound = errors.New("cover letter not found")
	ErrAnalysisInProgress  = errors.New("analysis already in progress")
	ErrUpstream            = errors.New("upstream generation failed")
)
