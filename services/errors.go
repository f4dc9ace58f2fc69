package services

import (
	"errors"
	"fmt"

	"github.com/lottoworks/controller-config/models"
)

// Stage identifies one step of the ingest pipeline
type Stage string

const (
	StageReadConfig      Stage = "read_config"
	StageConnect         Stage = "connect"
	StageProvision       Stage = "provision"
	StageAllocateVersion Stage = "allocate_version"
	StageInsert          Stage = "insert"
	StageCommit          Stage = "commit"
)

// StageError is the single typed failure channel of the ingest pipeline. It
// names the stage that failed and carries the audit action to record for it,
// so the orchestrator writes exactly one FAIL entry per failed run.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface
func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return string(e.Stage)
}

// Unwrap implements errors.Unwrap
func (e *StageError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is: two stage errors match when their stages match
func (e *StageError) Is(target error) bool {
	t, ok := target.(*StageError)
	if !ok {
		return false
	}
	return e.Stage == t.Stage
}

// Action returns the audit action to record for this failure
func (e *StageError) Action() models.AuditAction {
	switch e.Stage {
	case StageReadConfig:
		return models.AuditActionInitConfigReadFile
	case StageConnect:
		return models.AuditActionInitConfigDBConnect
	default:
		return models.AuditActionInitConfig
	}
}

// NewStageError creates a new stage error
func NewStageError(stage Stage, err error) *StageError {
	return &StageError{
		Stage: stage,
		Err:   err,
	}
}

// GetStage returns the failing stage of a pipeline error, or empty string
// if the error is not a StageError
func GetStage(err error) Stage {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return ""
}

// FailureAction returns the audit action to record for err. Unclassified
// errors fall back to the primary INIT_CONFIG action.
func FailureAction(err error) models.AuditAction {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Action()
	}
	return models.AuditActionInitConfig
}
