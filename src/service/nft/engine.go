package nft

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Pratik-jagdale/AgentDashBackend/src/common/utils"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xzap"
)

const DefaultBatchSize = 20

// EngineConfig describes the synthetic collection the engine exposes.
type EngineConfig struct {
	ContractAddress string
	CollectionName  string
	ImageUrlFormat  string // fmt pattern taking the token id
	BatchSize       int
}

// Engine enumerates the tokens an address owns. It prefers the persisted
// per-address cache and fills the gap up to the on-chain owned count with
// sequential fixed-size batches of concurrent index lookups. Chain read
// failures degrade to cached data instead of propagating.
type Engine struct {
	reader ChainReader
	cache  *cache
	cfg    EngineConfig
}

func NewEngine(reader ChainReader, store Store, cfg EngineConfig) *Engine {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Engine{
		reader: reader,
		cache:  &cache{store: store},
		cfg:    cfg,
	}
}

// AcquireOwnedTokens runs one acquisition pass for address and returns the
// final ordered token id list plus the validated selected token id.
func (e *Engine) AcquireOwnedTokens(ctx context.Context, address string) *Result {
	address = strings.ToLower(address)
	ids := e.cache.tokenIDs(address)
	selected := e.cache.selectedID(address)

	total, err := e.reader.BalanceOf(ctx, address)
	if err != nil {
		// No live connectivity must not blank out previously known data.
		xzap.WithContext(ctx).Warn("owned count read failed, serving cached token ids",
			zap.String("address", address), zap.Error(err))
		return &Result{TokenIDs: ids, SelectedID: selected}
	}

	scanIdx := e.cache.scanIndex(address, int64(len(ids)))
	if scanIdx < total {
		ids = e.paginate(ctx, address, ids, scanIdx, total)
	}

	selected = e.revalidateSelected(ctx, address, selected, ids)

	return &Result{TokenIDs: ids, SelectedID: selected}
}

// paginate scans owner indices [scanIdx, total) in sequential batches,
// persisting the merged list and the contiguous scan pointer after every
// batch so a crash loses at most the in-flight batch.
func (e *Engine) paginate(ctx context.Context, address string, ids []string, scanIdx, total int64) []string {
	batchSize := int64(e.cfg.BatchSize)
	contiguous := true

	for start := scanIdx; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}

		found, firstFailed := e.fetchBatch(ctx, address, start, end)
		ids = mergeTokenIDs(ids, found)

		if err := e.cache.saveTokenIDs(address, ids); err != nil {
			xzap.WithContext(ctx).Error("failed on persist token id cache",
				zap.String("address", address), zap.Error(err))
		}

		// The scan pointer only advances through contiguously successful
		// slots; a failed lookup holds it back so the next pass retries the
		// slot instead of hiding the token forever.
		if contiguous {
			next := end
			if firstFailed >= 0 {
				next = firstFailed
				contiguous = false
			}
			if err := e.cache.saveScanIndex(address, next); err != nil {
				xzap.WithContext(ctx).Error("failed on persist scan index",
					zap.String("address", address), zap.Error(err))
			}
		}
	}

	return ids
}

// fetchBatch looks up the owner indices [start, end) concurrently and waits
// for the whole batch. Failed slots are dropped; the lowest failed index is
// returned, or -1 when every slot succeeded.
func (e *Engine) fetchBatch(ctx context.Context, address string, start, end int64) ([]string, int64) {
	type slot struct {
		id  string
		err error
	}

	slots := make([]slot, end-start)
	wg := &sync.WaitGroup{}
	for i := start; i < end; i++ {
		wg.Add(1)
		go func(i int64) {
			defer wg.Done()
			id, err := e.reader.TokenOfOwnerByIndex(ctx, address, i)
			slots[i-start] = slot{id: id, err: err}
		}(i)
	}
	wg.Wait()

	var found []string
	firstFailed := int64(-1)
	for offset, s := range slots {
		if s.err != nil {
			xzap.WithContext(ctx).Warn("dropping failed token index lookup",
				zap.String("address", address),
				zap.Int64("index", start+int64(offset)),
				zap.Error(s.err))
			if firstFailed < 0 {
				firstFailed = start + int64(offset)
			}
			continue
		}
		found = append(found, s.id)
	}
	return found, firstFailed
}

// mergeTokenIDs folds newly discovered ids into the running list, dropping
// duplicates, and orders the result by descending numeric token id.
func mergeTokenIDs(existing, found []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(found))
	merged := make([]string, 0, len(existing)+len(found))
	for _, id := range append(append([]string{}, existing...), found...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}

	sort.Slice(merged, func(i, j int) bool {
		return numericTokenID(merged[i]).Cmp(numericTokenID(merged[j])) > 0
	})
	return merged
}

// numericTokenID parses a decimal token id; ids are compared as integers,
// never lexically.
func numericTokenID(id string) *big.Int {
	n, ok := new(big.Int).SetString(id, 10)
	if !ok {
		return new(big.Int)
	}
	return n
}

// revalidateSelected checks that the persisted selected token is still owned
// by address and falls back to the head of the final list when it is not.
func (e *Engine) revalidateSelected(ctx context.Context, address, selected string, ids []string) string {
	if selected != "" && e.isValidOwner(ctx, selected, address) {
		return selected
	}
	if len(ids) == 0 {
		return ""
	}
	selected = ids[0]
	if err := e.cache.saveSelectedID(address, selected); err != nil {
		xzap.WithContext(ctx).Error("failed on persist selected token",
			zap.String("address", address), zap.Error(err))
	}
	return selected
}

func (e *Engine) isValidOwner(ctx context.Context, tokenID, address string) bool {
	owner, err := e.reader.OwnerOf(ctx, tokenID)
	if err != nil {
		return false
	}
	return utils.SameAddress(owner, address)
}

// Collections maps an acquisition pass into the single synthetic collection
// the dashboard renders.
func (e *Engine) Collections(ctx context.Context, address string) []Collection {
	res := e.AcquireOwnedTokens(ctx, address)

	nfts := make([]NFT, 0, len(res.TokenIDs))
	for _, id := range res.TokenIDs {
		item := NFT{
			ID:           id,
			TokenID:      id,
			CollectionID: e.cfg.ContractAddress,
			Name:         fmt.Sprintf("%s #%s", e.cfg.CollectionName, id),
		}
		if e.cfg.ImageUrlFormat != "" {
			item.Image = fmt.Sprintf(e.cfg.ImageUrlFormat, id)
		}
		nfts = append(nfts, item)
	}

	return []Collection{{
		ID:              e.cfg.ContractAddress,
		Name:            e.cfg.CollectionName,
		ContractAddress: e.cfg.ContractAddress,
		NFTs:            nfts,
	}}
}

// SelectedToken returns the cached selected token id for address.
func (e *Engine) SelectedToken(address string) string {
	return e.cache.selectedID(address)
}
