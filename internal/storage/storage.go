package storage

import "gasscope/internal/model"

// Storage defines a sink for findings.
type Storage interface {
	PutFindingBatch(findings []model.Finding) error
}
