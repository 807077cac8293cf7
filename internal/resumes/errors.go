package resumes

import "errors"

var (
	ErrNotFound       = errors.New("resume not found")
	ErrNoVersions     = errors.New("no resume versions")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidContent = errors.New("invalid resume content")
	ErrBadAIResponse  = errors.New("model returned unusable resume content")
)
