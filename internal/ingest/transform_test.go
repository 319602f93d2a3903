package ingest

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func TestBuildTrace(t *testing.T) {
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	tx := types.NewTransaction(0, to, big.NewInt(0), 21000, big.NewInt(1), nil)

	header := &types.Header{Number: big.NewInt(100), Time: 1700000000}
	block := types.NewBlockWithHeader(header).WithBody(types.Transactions{tx}, nil)

	receipt := &types.Receipt{Status: types.ReceiptStatusFailed, GasUsed: 21000}
	trace := buildTrace(big.NewInt(1), block, []*types.Receipt{receipt})

	if trace.ID != "block_100" {
		t.Fatalf("unexpected trace id: %q", trace.ID)
	}
	if trace.Attrs["blockNumber"] != "100" {
		t.Fatalf("missing blockNumber attr: %v", trace.Attrs)
	}
	if len(trace.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(trace.Events))
	}

	attrs := trace.Events[0].Attrs
	if attrs["concept:name"] != to.Hex() {
		t.Fatalf("activity must be the to address, got %q", attrs["concept:name"])
	}
	if attrs["status"] != "0x0" {
		t.Fatalf("failed receipt must encode status 0x0, got %q", attrs["status"])
	}
	if attrs["gas"] != "0x5208" {
		t.Fatalf("unexpected gas attr: %q", attrs["gas"])
	}
	if attrs["gasLimit"] != "0x5208" {
		t.Fatalf("unexpected gasLimit attr: %q", attrs["gasLimit"])
	}
	if attrs["time:timestamp"] == "" {
		t.Fatalf("timestamp attr must be set")
	}
}

func TestBuildTraceSkipsMissingReceipts(t *testing.T) {
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	tx := types.NewTransaction(0, to, big.NewInt(0), 21000, big.NewInt(1), nil)

	header := &types.Header{Number: big.NewInt(101), Time: 1700000000}
	block := types.NewBlockWithHeader(header).WithBody(types.Transactions{tx}, nil)

	trace := buildTrace(big.NewInt(1), block, nil)
	if len(trace.Events) != 0 {
		t.Fatalf("transactions without receipts must be skipped, got %d events", len(trace.Events))
	}
}
