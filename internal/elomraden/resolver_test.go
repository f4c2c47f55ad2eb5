package elomraden

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolverNoMatchIsEmptyCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"natomradePostnummer": {"success": 1, "item": []}}`)
	})
	resolver := NewResolver(client)

	code, err := resolver.AreaCodeByPostalCode(context.Background(), 99999)
	require.NoError(t, err)
	require.Empty(t, code)
}

func TestResolverReturnsAreaCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, addressBody)
	})
	resolver := NewResolver(client)

	code, err := resolver.AreaCodeByAddress(context.Background(), "Drottninggatan 1", "Stockholm")
	require.NoError(t, err)
	require.Equal(t, "STH", code)

	code, err = resolver.AreaCodeByCoordinates(context.Background(), 59.33, 18.06)
	require.NoError(t, err)
	require.Equal(t, "STH", code)
}
