package codec

import (
	"log/slog"

	"github.com/aretw0/calinea/pkg/component"
)

// WithLogging logs parse failures and serialization errors at warn level and
// successful calls at debug level.
func WithLogging(logger *slog.Logger) Middleware {
	return func(next Codec) Codec {
		return &loggingCodec{next: next, logger: logger.With("format", string(next.Format()))}
	}
}

type loggingCodec struct {
	next   Codec
	logger *slog.Logger
}

func (c *loggingCodec) Format() Format { return c.next.Format() }

func (c *loggingCodec) Parse(input string, opts ...ParseOption) (*component.Node, error) {
	n, err := c.next.Parse(input, opts...)
	if err != nil {
		attrs := []any{"error", err, "bytes", len(input)}
		if pe, ok := AsParseError(err); ok {
			attrs = append(attrs, "pos", pe.Pos, "reason", pe.Reason)
		}
		c.logger.Warn("parse failed", attrs...)
		return nil, err
	}
	c.logger.Debug("parsed", "bytes", len(input))
	return n, nil
}

func (c *loggingCodec) Serialize(node *component.Node) (string, error) {
	s, err := c.next.Serialize(node)
	if err != nil {
		c.logger.Warn("serialize failed", "error", err)
		return "", err
	}
	c.logger.Debug("serialized", "bytes", len(s))
	return s, nil
}
