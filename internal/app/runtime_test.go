package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/daybook/internal/config"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "daybook.db")
	return &cfg
}

func TestBuild_MinimalConfig(t *testing.T) {
	cfg := testConfig(t)

	rt, err := Build(context.Background(), cfg, Options{LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })

	assert.NotNil(t, rt.Entries)
	assert.NotNil(t, rt.Recommendations)
	assert.NotNil(t, rt.Styles)
	assert.Nil(t, rt.Uploads, "storage not configured")
	assert.Nil(t, rt.Signer, "no jwt secret")

	entries, err := rt.Entries.ListEntries(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuild_DisabledLLMReportsUnavailable(t *testing.T) {
	cfg := testConfig(t)
	rt, err := Build(context.Background(), cfg, Options{LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })

	_, err = rt.Entries.GenerateEntry(context.Background(), "alice", service.GenerateEntryInput{
		Moments: []domain.MomentInput{{Description: "walked the dog"}},
	})
	assert.True(t, errors.Is(err, domain.ErrGenerationUnavailable), "got %v", err)
}

func TestBuild_UseCaseFailuresReachConfiguredLog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Format = "json"
	var logs bytes.Buffer
	rt, err := Build(context.Background(), cfg, Options{LogOutput: &logs})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })

	_, err = rt.Entries.GenerateEntry(context.Background(), "alice", service.GenerateEntryInput{
		Moments: []domain.MomentInput{{Description: "walked the dog"}},
	})
	require.Error(t, err)
	assert.Contains(t, logs.String(), `"use_case":"generate_entry"`)
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
}

func TestBuild_SignerAndStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.JWTSecret = "s3cret"
	cfg.Storage.Bucket = "photos"
	cfg.Storage.AccessKey = "ak"
	cfg.Storage.SecretKey = "sk"

	rt, err := Build(context.Background(), cfg, Options{LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })

	assert.NotNil(t, rt.Signer)
	assert.NotNil(t, rt.Uploads)
}

func TestBuild_BadLogFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Format = "xml"
	_, err := Build(context.Background(), cfg, Options{})
	assert.Error(t, err)
}

func TestRuntime_MigrateIsIdempotent(t *testing.T) {
	rt, err := Build(context.Background(), testConfig(t), Options{LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })

	first, err := rt.Migrate(context.Background())
	require.NoError(t, err)
	second, err := rt.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(3), first)
}
