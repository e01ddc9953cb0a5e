package models

import "time"

// StepReport is the transient input unit for the merge engine.
// It describes a number of steps taken between StartTime and EndTime,
// uploaded by the device at UploadTime. Reports are never persisted:
// they are validated, folded into the rollups, and discarded.
//
// A report is acceptable only when StartTime < EndTime <= UploadTime
// and StepCount >= 1. Zero-duration reports are rejected.
type StepReport struct {
	UserID     string
	StepCount  int64
	StartTime  time.Time
	EndTime    time.Time
	UploadTime time.Time
}
