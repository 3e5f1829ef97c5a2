package softpwm

import "errors"

// Errors returned (wrapped) by Manager.Create. Match them with errors.Is.
var (
	ErrInvalidPin        = errors.New("softpwm: invalid pin")
	ErrChannelActive     = errors.New("softpwm: channel already active")
	ErrInvalidRange      = errors.New("softpwm: invalid range")
	ErrResourceExhausted = errors.New("softpwm: cannot prepare pin")
	ErrWorkerStart       = errors.New("softpwm: worker failed to start")
)
