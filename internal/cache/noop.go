package cache

import (
	"context"
	"time"
)

// noopClient is the degraded implementation used when no cache is
// configured. Every read is a miss; every write is discarded.
type noopClient struct{}

func NewNoopClient() *noopClient { return &noopClient{} }

func (noopClient) Get(_ context.Context, _ string) ([]byte, bool) { return nil, false }

func (noopClient) Set(_ context.Context, _ string, _ []byte, _ time.Duration) {}

func (noopClient) Delete(_ context.Context, _ ...string) {}

func (noopClient) DeletePrefix(_ context.Context, _ string) {}
