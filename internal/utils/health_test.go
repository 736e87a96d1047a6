package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckerAllUp(t *testing.T) {
	checker := &HealthChecker{Probes: []Probe{
		{Name: "PostgreSQL", Ping: func(context.Context) error { return nil }},
		{Name: "Redis", Ping: func(context.Context) error { return nil }},
	}}

	status := checker.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	require.Len(t, status.Services, 2)
	assert.Equal(t, "up", status.Services[1].Status)
}

func TestHealthCheckerDegraded(t *testing.T) {
	checker := &HealthChecker{Probes: []Probe{
		{Name: "PostgreSQL", Ping: func(context.Context) error { return nil }},
		{Name: "MinIO", Ping: func(context.Context) error { return errors.New("bucket unreachable") }},
	}}

	status := checker.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "down", status.Services[1].Status)
	assert.Equal(t, "bucket unreachable", status.Services[1].Message)
}
