package domain

import "errors"

var (
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInactive         = errors.New("user inactive")
	ErrPassNotFound         = errors.New("pass not found")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrSlotUnavailable      = errors.New("slot unavailable")
	ErrSlotRequired         = errors.New("slot required")
	ErrStaleSuggestion      = errors.New("access state changed, re-scan required")
	ErrDuplicateActivePass  = errors.New("active pass already exists")
	ErrDuplicateAlert       = errors.New("open alert already exists for pass")
	ErrAlertNotFound        = errors.New("alert not found")
	ErrInvalidAction        = errors.New("invalid access action")
	ErrInvalidSlotStatus    = errors.New("invalid slot status")
	ErrInvalidScanPayload   = errors.New("invalid scan payload")
	ErrInvalidID            = errors.New("invalid id")
	ErrNotificationNotFound = errors.New("notification not found")
)
