package registrar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
)

func newTestRegistrar(t *testing.T, status int, capture *Manifest) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Registrar.URL = server.URL
	return NewClient(cfg, zap.NewNop())
}

func TestRegisterPostsManifest(t *testing.T) {
	var got Manifest
	client := newTestRegistrar(t, http.StatusCreated, &got)

	manifest := Manifest{Name: "power-tariffs", Author: "engrate", Category: "grid-data", Version: "dev"}
	require.NoError(t, client.Register(context.Background(), manifest))
	require.Equal(t, manifest, got)
}

func TestRegisterConflictMeansAlreadyRegistered(t *testing.T) {
	client := newTestRegistrar(t, http.StatusConflict, nil)
	require.NoError(t, client.Register(context.Background(), Manifest{Name: "power-tariffs"}))
}

func TestRegisterServerErrorFails(t *testing.T) {
	client := newTestRegistrar(t, http.StatusInternalServerError, nil)
	require.Error(t, client.Register(context.Background(), Manifest{Name: "power-tariffs"}))
}
