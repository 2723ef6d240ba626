package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexbot/internal/infra"
	"dexbot/internal/storage"
)

func testConfig() *infra.Config {
	var cfg infra.Config
	cfg.Tokens.XTC.ID = "xtc-1"
	cfg.Tokens.WICP.ID = "wicp-1"
	cfg.Exchange.ID = "exch-1"
	cfg.Identity.Controller = "ctl-1"
	cfg.Identity.Self = "self-1"
	return &cfg
}

func TestStateInitializedOnFirstDeploy(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	state, err := restoreOrInitState(ctx, store, testConfig())
	require.NoError(t, err)
	assert.Equal(t, "xtc-1", state.XTCToken)
	assert.Equal(t, "ctl-1", state.Controller)

	raw, err := store.GetMetadata(ctx, stateKey)
	require.NoError(t, err)
	assert.NotEmpty(t, raw, "first deploy must persist the state record")
}

func TestPersistedStateWinsOverConfigDrift(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	_, err = restoreOrInitState(ctx, store, testConfig())
	require.NoError(t, err)

	// Config edited between restarts.
	drifted := testConfig()
	drifted.Exchange.ID = "exch-2"

	state, err := restoreOrInitState(ctx, store, drifted)
	require.NoError(t, err)
	assert.Equal(t, "exch-1", state.Exchange, "persisted record must win over edited config")
}

func TestCorruptPersistedStateFailsLoudly(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.UpsertMetadata(ctx, stateKey, "{not json", 1))

	_, err = restoreOrInitState(ctx, store, testConfig())
	assert.Error(t, err)
}

func TestIncompleteConfigRejectedOnFirstDeploy(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer store.Close()

	cfg := testConfig()
	cfg.Identity.Controller = ""

	_, err = restoreOrInitState(context.Background(), store, cfg)
	assert.Error(t, err)
}
