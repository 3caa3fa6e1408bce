package diag

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogOutput(t *testing.T) *bytes.Buffer {
	var buffer bytes.Buffer
	SetupLoggingSystem(func(setup LoggingSystemSetup) {
		setup.SetOutput(&buffer)
	})
	t.Cleanup(func() {
		SetupLoggingSystem(func(setup LoggingSystemSetup) {
			setup.SetOutput(os.Stdout)
		})
	})
	return &buffer
}

func Test_Logger_jobIDContextField(t *testing.T) {
	buffer := captureLogOutput(t)

	logger := CreateLogger()
	ctx := ContextWithJobID(context.Background(), "job-42")
	logger.Info(ctx, "processing %v", "statement")

	var record map[string]interface{}
	if !assert.NoError(t, json.Unmarshal(buffer.Bytes(), &record)) {
		return
	}
	assert.Equal(t, "processing statement", record["msg"])
	contextField, ok := record["context"].(map[string]interface{})
	if !assert.True(t, ok, "missing context field: %v", record) {
		return
	}
	assert.Equal(t, "job-42", contextField["jobID"])
}

func Test_Logger_withoutJobID(t *testing.T) {
	buffer := captureLogOutput(t)

	CreateLogger().Info(context.Background(), "plain message")

	var record map[string]interface{}
	if !assert.NoError(t, json.Unmarshal(buffer.Bytes(), &record)) {
		return
	}
	assert.Equal(t, "plain message", record["msg"])
	assert.NotContains(t, record, "context")
}
