// Package redis implements ports.ComponentStore on Redis.
//
// Each tree is stored under prefix+"item:"+id in the tree encoding (JSON or
// CBOR), so no ID can collide with the index.
// A sorted set at prefix+"index" lists the IDs, scored by their expiry time
// (0 when they never expire); List trims expired members lazily.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/codec/tree"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/ports"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "calinea:component:"

// Encoding selects how trees are written.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingCBOR Encoding = "cbor"
)

// ParseEncoding resolves "json" or "cbor".
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingJSON, EncodingCBOR:
		return Encoding(s), nil
	}
	return "", fmt.Errorf("unknown encoding %q", s)
}

// Store implements ports.ComponentStore using Redis.
type Store struct {
	client   backend.UniversalClient
	prefix   string
	ttl      time.Duration
	encoding Encoding
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires stored trees after d. Zero keeps them forever.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithPrefix replaces DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithEncoding selects the stored encoding. Defaults to EncodingJSON.
func WithEncoding(e Encoding) Option {
	return func(s *Store) { s.encoding = e }
}

// WithClock replaces time.Now when scoring and trimming the index.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewFromClient creates a store on an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client:   client,
		prefix:   DefaultPrefix,
		encoding: EncodingJSON,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New connects to the server described by a redis:// URL.
func New(url string, opts ...Option) (*Store, error) {
	o, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(o), opts...), nil
}

func (s *Store) key(id string) string { return s.prefix + "item:" + id }

func (s *Store) indexKey() string { return s.prefix + "index" }

// Save encodes the tree and writes it together with its index entry.
func (s *Store) Save(ctx context.Context, id string, node *component.Node) error {
	if node == nil {
		return fmt.Errorf("save %s: nil node", id)
	}
	data, err := s.encode(node)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}

	var score float64
	if s.ttl > 0 {
		score = float64(s.now().Add(s.ttl).Unix())
	}

	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Set(ctx, s.key(id), data, s.ttl)
		pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: id})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save %s: %w", id, err)
	}
	return nil
}

// Load reads and decodes the tree.
func (s *Store) Load(ctx context.Context, id string) (*component.Node, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis load %s: %w", id, err)
	}
	node, err := s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return node, nil
}

// Delete removes the tree and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.key(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete %s: %w", id, err)
	}
	return nil
}

// List trims expired index entries, then returns the remaining IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := strconv.FormatInt(s.now().Unix(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "(0", now).Err(); err != nil {
		return nil, fmt.Errorf("redis index cleanup: %w", err)
	}
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	return ids, nil
}

func (s *Store) encode(node *component.Node) ([]byte, error) {
	switch s.encoding {
	case EncodingCBOR:
		return tree.MarshalCBOR(node)
	case EncodingJSON:
		out, err := tree.NewJSON().Serialize(node)
		return []byte(out), err
	}
	return nil, fmt.Errorf("unknown encoding %q", s.encoding)
}

func (s *Store) decode(data []byte) (*component.Node, error) {
	switch s.encoding {
	case EncodingCBOR:
		return tree.UnmarshalCBOR(data)
	case EncodingJSON:
		return tree.NewJSON().Parse(string(data), codec.StrictMode())
	}
	return nil, fmt.Errorf("unknown encoding %q", s.encoding)
}
