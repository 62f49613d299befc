/*
Package cache keeps encoded listings in groupcache.

groupcache does not support expiration, so keys carry a quantized time value
that changes roughly every duration. A generation number is part of the key
too; Invalidate bumps it so the next Get reloads. Expiration can be disabled
by specifying 0 for the duration.
*/
package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/golang/groupcache"
)

// A LoadFunc produces the encoded value of the named listing.
type LoadFunc func(ctx context.Context, name string) ([]byte, error)

// Group is a cache of listings sharing one loader.
type Group struct {
	duration   time.Duration
	generation atomic.Uint64
	group      *groupcache.Group
}

// New creates a Group using groupcache with the given groupName and sizeInBytes.
// Group names must be unique within the process.
func New(groupName string, sizeInBytes int64, duration time.Duration, load LoadFunc) *Group {
	return &Group{
		duration: duration,
		group: groupcache.NewGroup(groupName, sizeInBytes, groupcache.GetterFunc(
			func(ctx context.Context, key string, dest groupcache.Sink) error {
				q, err := url.ParseQuery(key)
				if err != nil {
					return fmt.Errorf("Invalid cache key: %w", err)
				}
				b, err := load(ctx, q.Get("name"))
				if err != nil {
					return err
				}
				return dest.SetBytes(b)
			})),
	}
}

// Get returns the encoded listing, loading it if needed.
func (g *Group) Get(ctx context.Context, name string) ([]byte, error) {
	var (
		data []byte
		q    = make(url.Values, 3)
	)
	q.Set("name", name)
	q.Set("t", strconv.FormatInt(quantize(time.Now(), g.duration, name), 10))
	q.Set("g", strconv.FormatUint(g.generation.Load(), 10))
	err := g.group.Get(ctx, q.Encode(), groupcache.AllocatingByteSliceSink(&data))
	if err != nil {
		return nil, fmt.Errorf("Get %s: %w", name, err)
	}
	return data, nil
}

// Invalidate makes the following calls to Get reload their listings.
func (g *Group) Invalidate() {
	g.generation.Add(1)
}

// Generation reports how many times the group was invalidated.
func (g *Group) Generation() uint64 {
	return g.generation.Load()
}

// quantize returns the time bucket of t. The bucket edges are shifted by a
// hash of key so entries don't all expire at once.
func quantize(t time.Time, d time.Duration, key string) int64 {
	if d <= 0 {
		return 0
	}
	h := fnv.New64a()
	h.Write([]byte(key))
	offset := int64(h.Sum64() % uint64(d))
	return (t.UnixNano() + offset) / int64(d)
}
