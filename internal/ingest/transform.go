package ingest

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"gasscope/internal/model"
)

const activityContractCreation = "contract-creation"

// buildTrace converts one block and its receipts into a trace: one event per
// transaction, with the attribute keys the analyzer expects by default.
func buildTrace(chainID *big.Int, block *types.Block, receipts []*types.Receipt) model.Trace {
	number := block.NumberU64()
	trace := model.Trace{
		ID: fmt.Sprintf("block_%d", number),
		Attrs: map[string]string{
			"concept:name": fmt.Sprintf("block_%d", number),
			"blockNumber":  fmt.Sprintf("%d", number),
		},
		Events: make([]model.Event, 0, len(block.Transactions())),
	}

	signer := types.LatestSignerForChainID(chainID)
	blockTime := time.Unix(int64(block.Time()), 0).UTC()

	for i, tx := range block.Transactions() {
		if i >= len(receipts) || receipts[i] == nil {
			continue
		}
		trace.Events = append(trace.Events, buildEvent(signer, tx, receipts[i], blockTime))
	}

	return trace
}

func buildEvent(signer types.Signer, tx *types.Transaction, receipt *types.Receipt, blockTime time.Time) model.Event {
	activity := activityContractCreation
	if to := tx.To(); to != nil {
		activity = to.Hex()
	}

	attrs := map[string]string{
		"concept:name":   activity,
		"time:timestamp": blockTime.Format(time.RFC3339),
		"status":         hexutil.EncodeUint64(receipt.Status),
		"gas":            hexutil.EncodeUint64(receipt.GasUsed),
		"gasLimit":       hexutil.EncodeUint64(tx.Gas()),
		"txHash":         tx.Hash().Hex(),
	}
	if sender, err := types.Sender(signer, tx); err == nil {
		attrs["org:resource"] = sender.Hex()
	}

	return model.Event{Attrs: attrs}
}
