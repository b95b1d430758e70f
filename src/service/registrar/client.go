package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 15 * time.Second

// RegistrationMessage builds the canonical text the wallet signs when binding
// a Discord server to a collection token. The bot verifies the signature
// against this exact string, so the format is frozen.
func RegistrationMessage(serverID, collectionID, nftID string) string {
	return fmt.Sprintf("Register Discord server %s with collection %s and NFT %s",
		serverID, collectionID, nftID)
}

// Registration is the signed payload forwarded to the bot service.
type Registration struct {
	ServerID     string `json:"serverId"`
	UserAddress  string `json:"userAddress"`
	Signature    string `json:"signature"`
	Message      string `json:"message"`
	CollectionID string `json:"collectionId"`
	NftID        string `json:"nftId"`
	AgentAddress string `json:"agentAddress,omitempty"`
	AgentID      string `json:"agentID,omitempty"`
}

// RegisterResult is the bot's answer to a successful registration.
type RegisterResult struct {
	InviteLink string `json:"inviteLink"`
}

// Server is one registered Discord server as the bot reports it.
type Server struct {
	ServerID     string `json:"serverId"`
	ServerName   string `json:"serverName,omitempty"`
	UserAddress  string `json:"userAddress"`
	CollectionID string `json:"collectionId"`
	NftID        string `json:"nftId"`
	AgentAddress string `json:"agentAddress,omitempty"`
	AgentID      string `json:"agentID,omitempty"`
}

// Client talks to the Discord bot's registration API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Register binds a server to a collection token and returns the bot invite
// link.
func (c *Client) Register(ctx context.Context, reg *Registration) (*RegisterResult, error) {
	var result RegisterResult
	if err := c.do(ctx, http.MethodPost, "/api/register", reg, &result); err != nil {
		return nil, errors.Wrap(err, "failed on register server")
	}
	return &result, nil
}

// Update rebinds an already registered server to a different token.
func (c *Client) Update(ctx context.Context, serverID string, reg *Registration) error {
	path := "/api/servers/" + url.PathEscape(serverID)
	if err := c.do(ctx, http.MethodPost, path, reg, nil); err != nil {
		return errors.Wrap(err, "failed on update server registration")
	}
	return nil
}

// Delete removes a server registration.
func (c *Client) Delete(ctx context.Context, serverID string, reg *Registration) error {
	path := "/api/servers/" + url.PathEscape(serverID)
	if err := c.do(ctx, http.MethodDelete, path, reg, nil); err != nil {
		return errors.Wrap(err, "failed on delete server registration")
	}
	return nil
}

// List returns the servers registered by userAddress.
func (c *Client) List(ctx context.Context, userAddress string) ([]Server, error) {
	path := "/api/servers?userAddress=" + url.QueryEscape(userAddress)
	var servers []Server
	if err := c.do(ctx, http.MethodGet, path, nil, &servers); err != nil {
		return nil, errors.Wrap(err, "failed on list server registrations")
	}
	return servers, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed on encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed on build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed on read response body")
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("bot api returned %d: %s", resp.StatusCode, string(raw))
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "failed on decode response body")
	}
	return nil
}
