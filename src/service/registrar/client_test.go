package registrar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationMessage(t *testing.T) {
	msg := RegistrationMessage("123", "0xcol", "9")
	assert.Equal(t, "Register Discord server 123 with collection 0xcol and NFT 9", msg)
}

func TestRegisterPostsSignedPayload(t *testing.T) {
	var got Registration
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(RegisterResult{InviteLink: "https://discord.gg/x"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res, err := c.Register(context.Background(), &Registration{
		ServerID:    "123",
		UserAddress: "0xabc",
		Signature:   "0xsig",
		Message:     RegistrationMessage("123", "0xcol", "9"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://discord.gg/x", res.InviteLink)
	assert.Equal(t, "123", got.ServerID)
	assert.Equal(t, "0xsig", got.Signature)
}

func TestUpdateAndDeleteTargetServerPath(t *testing.T) {
	var paths []string
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	reg := &Registration{ServerID: "42"}
	require.NoError(t, c.Update(context.Background(), "42", reg))
	require.NoError(t, c.Delete(context.Background(), "42", reg))

	assert.Equal(t, []string{"/api/servers/42", "/api/servers/42"}, paths)
	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}

func TestListFiltersByUserAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0xabc", r.URL.Query().Get("userAddress"))
		json.NewEncoder(w).Encode([]Server{{ServerID: "1", UserAddress: "0xabc"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	servers, err := c.List(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "1", servers[0].ServerID)
}

func TestNonSuccessStatusSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "signature mismatch", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Register(context.Background(), &Registration{ServerID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "signature mismatch")
}
