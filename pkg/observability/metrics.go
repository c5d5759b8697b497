package observability

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/persistence/middleware"
	"github.com/aretw0/calinea/pkg/ports"
)

const namespace = "calinea"

// Metrics holds the collectors shared by the instrumenting middlewares.
type Metrics struct {
	CodecOperations *prometheus.CounterVec
	CodecDuration   *prometheus.HistogramVec
	StoreOperations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		CodecOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "codec_operations_total",
			Help:      "Codec parse and serialize calls by format and result.",
		}, []string{"format", "operation", "result"}),
		CodecDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "codec_duration_seconds",
			Help:      "Duration of codec parse and serialize calls.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"format", "operation"}),
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Component store calls by operation and result.",
		}, []string{"operation", "result"}),
	}
	for _, c := range []prometheus.Collector{m.CodecOperations, m.CodecDuration, m.StoreOperations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Instrument returns a codec middleware recording every call in m.
func Instrument(m *Metrics) codec.Middleware {
	return func(next codec.Codec) codec.Codec {
		return &instrumentedCodec{next: next, m: m}
	}
}

type instrumentedCodec struct {
	next codec.Codec
	m    *Metrics
}

func (c *instrumentedCodec) Format() codec.Format { return c.next.Format() }

func (c *instrumentedCodec) Parse(input string, opts ...codec.ParseOption) (*component.Node, error) {
	start := time.Now()
	n, err := c.next.Parse(input, opts...)
	c.observe("parse", start, err)
	return n, err
}

func (c *instrumentedCodec) Serialize(n *component.Node) (string, error) {
	start := time.Now()
	out, err := c.next.Serialize(n)
	c.observe("serialize", start, err)
	return out, err
}

func (c *instrumentedCodec) observe(op string, start time.Time, err error) {
	format := string(c.next.Format())
	c.m.CodecDuration.WithLabelValues(format, op).Observe(time.Since(start).Seconds())
	c.m.CodecOperations.WithLabelValues(format, op, result(err)).Inc()
}

// InstrumentStore returns a store middleware counting every call in m.
// A Load miss is counted as "not_found" rather than "error".
func InstrumentStore(m *Metrics) middleware.Middleware {
	return func(next ports.ComponentStore) ports.ComponentStore {
		return &instrumentedStore{next: next, m: m}
	}
}

type instrumentedStore struct {
	next ports.ComponentStore
	m    *Metrics
}

func (s *instrumentedStore) Save(ctx context.Context, id string, node *component.Node) error {
	err := s.next.Save(ctx, id, node)
	s.m.StoreOperations.WithLabelValues("save", result(err)).Inc()
	return err
}

func (s *instrumentedStore) Load(ctx context.Context, id string) (*component.Node, error) {
	n, err := s.next.Load(ctx, id)
	res := result(err)
	if errors.Is(err, ports.ErrNotFound) {
		res = "not_found"
	}
	s.m.StoreOperations.WithLabelValues("load", res).Inc()
	return n, err
}

func (s *instrumentedStore) Delete(ctx context.Context, id string) error {
	err := s.next.Delete(ctx, id)
	s.m.StoreOperations.WithLabelValues("delete", result(err)).Inc()
	return err
}

func (s *instrumentedStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.next.List(ctx)
	s.m.StoreOperations.WithLabelValues("list", result(err)).Inc()
	return ids, err
}
