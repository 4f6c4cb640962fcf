package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
	"github.com/noah-isme/yoga-studio-admin/internal/repository"
	"github.com/noah-isme/yoga-studio-admin/pkg/config"
	"github.com/noah-isme/yoga-studio-admin/pkg/database"
)

func TestAdminServiceResetClearsStudio(t *testing.T) {
	db, err := database.OpenSQLite(config.DatabaseConfig{Path: database.MemoryPath})
	require.NoError(t, err)
	defer db.Close()

	svc := NewAdminService(db, nil)
	ctx := context.Background()
	require.NoError(t, svc.Migrate(ctx))
	require.NoError(t, svc.Ping(ctx))

	teachers := repository.NewTeacherRepository(db)
	_, err = teachers.Create(ctx, &models.Teacher{Name: "Ann"})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))

	list, err := teachers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	version, err := svc.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, database.CurrentSchemaVersion, version)
}
