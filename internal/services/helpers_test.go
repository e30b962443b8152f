package services

import (
	"context"
	"strings"
	"time"

	"github.com/fintrackhq/backend/internal/realtime"
)

// spyCache is an in-memory cache.Client that records every operation.
type spyCache struct {
	data          map[string][]byte
	sets          []string
	deletes       []string
	prefixDeletes []string
}

func newSpyCache() *spyCache {
	return &spyCache{data: make(map[string][]byte)}
}

func (c *spyCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *spyCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.data[key] = value
	c.sets = append(c.sets, key)
}

func (c *spyCache) Delete(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(c.data, k)
		c.deletes = append(c.deletes, k)
	}
}

func (c *spyCache) DeletePrefix(_ context.Context, prefix string) {
	c.prefixDeletes = append(c.prefixDeletes, prefix)
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
}

func (c *spyCache) deleted(key string) bool {
	for _, k := range c.deletes {
		if k == key {
			return true
		}
	}
	for _, p := range c.prefixDeletes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// spyNotifier records emitted events instead of fanning them out.
type spyNotifier struct {
	events []emitted
}

type emitted struct {
	uid   string
	event realtime.Event
}

func (n *spyNotifier) Emit(uid string, event realtime.Event) {
	n.events = append(n.events, emitted{uid: uid, event: event})
}

func (n *spyNotifier) eventTypes() []string {
	types := make([]string, len(n.events))
	for i, e := range n.events {
		types[i] = e.event.Type
	}
	return types
}
