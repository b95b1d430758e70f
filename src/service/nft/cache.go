package nft

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xzap"
)

// Store is the persistence surface the engine writes through. The go-zero kv
// store satisfies it.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Cache key layout, kept byte for byte compatible with the dashboard
// frontend's localStorage keys. Keys are namespaced by address only; there is
// no chain id in the key.
func nftsKey(address string) string {
	return "nfts-" + strings.ToLower(address)
}

func selectedNftKey(address string) string {
	return "selectedNftId-" + strings.ToLower(address)
}

func scanIndexKey(address string) string {
	return "nftScanIndex-" + strings.ToLower(address)
}

// cache wraps Store with the engine's typed accessors. Read failures degrade
// to empty values; the cache is an availability fallback, never a source of
// hard errors.
type cache struct {
	store Store
}

func (c *cache) tokenIDs(address string) []string {
	raw, err := c.store.Get(nftsKey(address))
	if err != nil || raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		xzap.WithContext(context.Background()).Warn("dropping unreadable nft cache entry",
			zap.String("address", address), zap.Error(err))
		return nil
	}
	return ids
}

func (c *cache) saveTokenIDs(address string, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.store.Set(nftsKey(address), string(raw))
}

func (c *cache) selectedID(address string) string {
	id, err := c.store.Get(selectedNftKey(address))
	if err != nil {
		return ""
	}
	return id
}

func (c *cache) saveSelectedID(address, id string) error {
	return c.store.Set(selectedNftKey(address), id)
}

// scanIndex returns the highest contiguous successfully scanned index, or
// fallback when none was recorded yet (legacy caches written before the
// index existed).
func (c *cache) scanIndex(address string, fallback int64) int64 {
	raw, err := c.store.Get(scanIndexKey(address))
	if err != nil || raw == "" {
		return fallback
	}
	idx, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return idx
}

func (c *cache) saveScanIndex(address string, idx int64) error {
	return c.store.Set(scanIndexKey(address), strconv.FormatInt(idx, 10))
}
