package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/autoservice/garage-api/config"
	"github.com/autoservice/garage-api/services"
	"github.com/autoservice/garage-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	uploadDir := utils.UploadDir
	t.Cleanup(func() {
		if db := config.GetDB(); db != nil {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		config.SetDB(nil)
		config.SetConfig(nil)
		services.SetScheduleCache(nil)
		services.SetImageService(nil)
		utils.UploadDir = uploadDir
	})
}

func TestBootstrap_LocalStorage(t *testing.T) {
	restoreGlobals(t)
	dir := t.TempDir()
	cfg := &config.Config{
		DatabaseURL:      filepath.Join(dir, "garage.db"),
		DBDriver:         "sqlite",
		ScheduleTimezone: "Europe/Moscow",
		UploadDir:        filepath.Join(dir, "uploads"),
	}

	require.NoError(t, bootstrap(context.Background(), cfg))

	assert.Same(t, cfg, config.GetConfig())
	assert.Equal(t, "Europe/Moscow", config.ScheduleLocation().String())
	assert.Equal(t, cfg.UploadDir, utils.UploadDir)
	assert.Nil(t, services.GetScheduleCache(), "no Redis configured")
	assert.IsType(t, &services.LocalImageService{}, services.GetImageService())

	tables, err := config.GetDB().Migrator().GetTables()
	require.NoError(t, err)
	for _, table := range []string{"Order", "Order_Service", "Service", "Box", "Client", "ClientCar", "Employee"} {
		assert.Contains(t, tables, table)
	}
}

func TestBootstrap_UnreachableRedisRunsWithoutCache(t *testing.T) {
	restoreGlobals(t)
	dir := t.TempDir()
	cfg := &config.Config{
		DatabaseURL:      filepath.Join(dir, "garage.db"),
		DBDriver:         "sqlite",
		ScheduleTimezone: "UTC",
		UploadDir:        dir,
		RedisAddr:        "localhost:1",
	}

	require.NoError(t, bootstrap(context.Background(), cfg))
	assert.Nil(t, services.GetScheduleCache())
}

func TestBootstrap_DatabaseFailure(t *testing.T) {
	restoreGlobals(t)
	cfg := &config.Config{
		DatabaseURL:      filepath.Join(t.TempDir(), "missing", "dir", "garage.db"),
		DBDriver:         "sqlite",
		ScheduleTimezone: "UTC",
	}

	err := bootstrap(context.Background(), cfg)
	assert.Error(t, err)
}
