package minio

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDetectContentType(t *testing.T) {
	ct, ok := DetectContentType(".PNG")
	assert.True(t, ok)
	assert.Equal(t, "image/png", ct)

	ct, ok = DetectContentType(".pdf")
	assert.True(t, ok)
	assert.Equal(t, "application/pdf", ct)

	_, ok = DetectContentType(".exe")
	assert.False(t, ok)
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, CheckSize(1024, 4*1024*1024))

	err := CheckSize(5*1024*1024, 4*1024*1024)
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Contains(t, err.Error(), "4.0 MiB")
}

func TestGenerateObjectNameKeepsExtension(t *testing.T) {
	name := GenerateObjectName("Report.PDF")
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.Equal(t, 4, len(strings.Split(name, "/")))
}

func TestObjectNameFromURL(t *testing.T) {
	m := &MinioProvider{publicURL: "http://cdn.local/discord-files"}

	name, ok := m.objectNameFromURL("http://cdn.local/discord-files/tmp/2025/01/01/a.png")
	assert.True(t, ok)
	assert.Equal(t, "tmp/2025/01/01/a.png", name)

	_, ok = m.objectNameFromURL("https://elsewhere.example.com/a.png")
	assert.False(t, ok)

	_, ok = m.objectNameFromURL("http://cdn.local/discord-files/../secret")
	assert.False(t, ok)
}

func TestConfirmURLLeavesPermanentObjects(t *testing.T) {
	m := &MinioProvider{publicURL: "http://cdn.local/discord-files"}

	url, err := m.ConfirmURL(context.Background(), "http://cdn.local/discord-files/2025/01/01/a.png")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.local/discord-files/2025/01/01/a.png", url)

	_, err = m.ConfirmURL(context.Background(), "https://elsewhere.example.com/a.png")
	assert.ErrorIs(t, err, ErrForeignURL)
}

type cleanerStub struct {
	calls  int
	maxAge time.Duration
	err    error
}

func (c *cleanerStub) DeleteTmpFilesOlderThan(_ context.Context, maxAge time.Duration) error {
	c.calls++
	c.maxAge = maxAge
	return c.err
}

func TestJanitorRejectsInvalidCron(t *testing.T) {
	_, err := NewJanitor(&cleanerStub{}, "every now and then", time.Hour, zap.NewNop())
	assert.Error(t, err)
}

func TestJanitorNextRun(t *testing.T) {
	j, err := NewJanitor(&cleanerStub{}, "*/15 * * * *", time.Hour, zap.NewNop())
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 10, 7, 30, 0, time.UTC)
	next, err := j.NextRun(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 15, 0, 0, time.UTC), next)
}

func TestJanitorRunOnce(t *testing.T) {
	stub := &cleanerStub{err: errors.New("list failed")}
	j, err := NewJanitor(stub, "@hourly", time.Hour, zap.NewNop())
	require.NoError(t, err)

	j.RunOnce(context.Background())

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, time.Hour, stub.maxAge)
}
