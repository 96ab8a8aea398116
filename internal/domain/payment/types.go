package payment

import "errors"

var (
	ErrInvalidStatus     = errors.New("invalid payment status")
	ErrInvalidTransition = errors.New("invalid payment status transition")
)

type Status string

const (
	StatusCreated  Status = "created"
	StatusCaptured Status = "captured"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

var transitions = map[Status][]Status{
	StatusCreated:  {StatusCaptured, StatusFailed},
	StatusCaptured: {StatusRefunded},
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusCreated, StatusCaptured, StatusFailed, StatusRefunded:
		return st, nil
	}
	return "", ErrInvalidStatus
}

func (s Status) String() string { return string(s) }

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
