package ingest

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"gasscope/internal/chain"
	"gasscope/internal/model"
	"gasscope/internal/xes"
)

// RunConfig holds runtime settings for the ingester.
type RunConfig struct {
	FromBlock         uint64
	ToBlock           uint64
	BatchSize         uint64
	Out               string
	CheckpointPath    string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Runner backfills a block range into an XES event log: one trace per
// block, one event per transaction.
type Runner struct {
	cfg        RunConfig
	chain      *chain.Client
	logger     *zap.Logger
	checkpoint *CheckpointStore
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, chainClient *chain.Client, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		chain:      chainClient,
		logger:     logger,
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
	}
}

// Run executes the backfill loop and writes the collected log on success.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.cfg.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}
	if r.cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}

	chainID, err := r.chain.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}

	from := r.cfg.FromBlock
	to := r.cfg.ToBlock
	if to == 0 {
		latest, err := r.chain.LatestBlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("get latest block: %w", err)
		}
		to = latest
	}

	if r.checkpoint != nil {
		cp, ok, err := r.checkpoint.Load()
		if err != nil {
			return err
		}
		if ok && cp.LastIngestedBlock >= from {
			from = cp.LastIngestedBlock + 1
			r.logger.Info("resume from checkpoint", zap.Uint64("last_ingested", cp.LastIngestedBlock), zap.Uint64("from", from))
		}
	}

	if from > to {
		r.logger.Info("nothing to ingest", zap.Uint64("from", from), zap.Uint64("to", to))
		return nil
	}

	ranges, err := SplitRange(from, to, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	eventLog := model.Log{}
	for _, blockRange := range ranges {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logger.Info("fetch blocks", zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))

		var events int
		for number := blockRange.From; number <= blockRange.To; number++ {
			trace, err := r.ingestBlock(ctx, chainID, number)
			if err != nil {
				return fmt.Errorf("ingest block %d: %w", number, err)
			}
			eventLog.Traces = append(eventLog.Traces, trace)
			events += len(trace.Events)
		}

		if r.checkpoint != nil {
			if err := r.checkpoint.Save(blockRange.To); err != nil {
				return err
			}
		}

		r.logger.Info("batch complete", zap.Int("events", events), zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))
	}

	if err := xes.WriteFile(r.cfg.Out, eventLog); err != nil {
		return fmt.Errorf("write event log: %w", err)
	}

	r.logger.Info("ingest complete", zap.Int("traces", len(eventLog.Traces)), zap.String("out", r.cfg.Out))
	return nil
}

func (r *Runner) ingestBlock(ctx context.Context, chainID *big.Int, number uint64) (model.Trace, error) {
	block, err := r.blockWithRetry(ctx, number)
	if err != nil {
		return model.Trace{}, err
	}

	receipts := make([]*types.Receipt, len(block.Transactions()))
	for i, tx := range block.Transactions() {
		receipt, err := r.receiptWithRetry(ctx, tx)
		if err != nil {
			return model.Trace{}, fmt.Errorf("receipt %s: %w", tx.Hash().Hex(), err)
		}
		receipts[i] = receipt
	}

	return buildTrace(chainID, block, receipts), nil
}

func (r *Runner) blockWithRetry(ctx context.Context, number uint64) (*types.Block, error) {
	var block *types.Block
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		block, err = r.chain.BlockByNumber(ctx, number)
		if err != nil {
			r.logger.Warn("block fetch failed", zap.Error(err), zap.Uint64("block_number", number))
		}
		return err
	})
	return block, err
}

func (r *Runner) receiptWithRetry(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		receipt, err = r.chain.TransactionReceipt(ctx, tx)
		if err != nil {
			r.logger.Warn("receipt fetch failed", zap.Error(err), zap.String("tx", tx.Hash().Hex()))
		}
		return err
	})
	return receipt, err
}
