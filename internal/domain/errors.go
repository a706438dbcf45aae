package domain

import "errors"

var (
	ErrAlertNotFound       = errors.New("alert not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrPreferenceNotFound  = errors.New("preference not found")
	ErrUnregisteredChannel = errors.New("channel not registered")
	ErrPassInProgress      = errors.New("reminder pass already in progress")
)
