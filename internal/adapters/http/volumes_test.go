package http

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih/dockpanel/internal/core/domain"
)

func TestListVolumes(t *testing.T) {
	app, _ := newTestApp(t)

	volumes := decode[[]domain.Volume](t, do(t, app, http.MethodGet, "/api/volumes", nil))
	require.Len(t, volumes, 2)
	assert.True(t, volumes[0].InUse())
}

func TestListVolumesEmptyIsArray(t *testing.T) {
	app, engine := newTestApp(t)
	engine.volumes = []domain.Volume{}

	resp := do(t, app, http.MethodGet, "/api/volumes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, decode[[]any](t, resp))
}

func TestRemoveVolume(t *testing.T) {
	app, engine := newTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/volumes/remove", fiber.Map{"name": "scratch"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Volume scratch removed successfully", decode[map[string]string](t, resp)["message"])
	assert.Equal(t, []string{"volume_remove:scratch"}, engine.Calls())

	volumes := decode[[]domain.Volume](t, do(t, app, http.MethodGet, "/api/volumes", nil))
	for _, v := range volumes {
		assert.NotEqual(t, "scratch", v.Name)
	}
}

func TestRemoveVolumeInUseIsRefused(t *testing.T) {
	app, _ := newTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/volumes/remove", fiber.Map{"name": "data"})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "volume is in use")

	volumes := decode[[]domain.Volume](t, do(t, app, http.MethodGet, "/api/volumes", nil))
	var names []string
	for _, v := range volumes {
		names = append(names, v.Name)
	}
	assert.Contains(t, names, "data")
}

func TestRemoveVolumeValidation(t *testing.T) {
	app, engine := newTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/volumes/remove", fiber.Map{"id": "data"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Volume name is required", decode[map[string]string](t, resp)["error"])
	assert.Empty(t, engine.Calls())
}
