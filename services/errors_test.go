package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lottoworks/controller-config/models"
	"github.com/stretchr/testify/assert"
)

func TestStageError_Error(t *testing.T) {
	err := NewStageError(StageInsert, errors.New("duplicate key"))
	assert.Equal(t, "insert: duplicate key", err.Error())

	bare := &StageError{Stage: StageConnect}
	assert.Equal(t, "connect", bare.Error())
}

func TestStageError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStageError(StageConnect, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestStageError_Is(t *testing.T) {
	err := NewStageError(StageProvision, errors.New("ddl failed"))

	assert.ErrorIs(t, err, &StageError{Stage: StageProvision})
	assert.NotErrorIs(t, err, &StageError{Stage: StageInsert})
	assert.NotErrorIs(t, err, errors.New("ddl failed"))
}

func TestStageError_Action(t *testing.T) {
	tests := []struct {
		stage  Stage
		action models.AuditAction
	}{
		{StageReadConfig, models.AuditActionInitConfigReadFile},
		{StageConnect, models.AuditActionInitConfigDBConnect},
		{StageProvision, models.AuditActionInitConfig},
		{StageAllocateVersion, models.AuditActionInitConfig},
		{StageInsert, models.AuditActionInitConfig},
		{StageCommit, models.AuditActionInitConfig},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			err := NewStageError(tt.stage, errors.New("boom"))
			assert.Equal(t, tt.action, err.Action())
		})
	}
}

func TestGetStage(t *testing.T) {
	err := NewStageError(StageAllocateVersion, errors.New("boom"))
	assert.Equal(t, StageAllocateVersion, GetStage(err))

	wrapped := fmt.Errorf("run failed: %w", err)
	assert.Equal(t, StageAllocateVersion, GetStage(wrapped))

	assert.Equal(t, Stage(""), GetStage(errors.New("plain")))
	assert.Equal(t, Stage(""), GetStage(nil))
}

func TestFailureAction(t *testing.T) {
	assert.Equal(t, models.AuditActionInitConfigReadFile,
		FailureAction(NewStageError(StageReadConfig, errors.New("missing"))))
	assert.Equal(t, models.AuditActionInitConfigDBConnect,
		FailureAction(NewStageError(StageConnect, errors.New("refused"))))
	assert.Equal(t, models.AuditActionInitConfig,
		FailureAction(errors.New("unclassified")))
}
