package realtime

import (
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// NatsChannel is the production Channel, backed by a NATS connection.
type NatsChannel struct {
	nc   *nats.Conn
	subs []*nats.Subscription
}

// ConnectNats dials the NATS server, retrying with backoff so the process
// can come up before the broker does.
func ConnectNats(url string) (*NatsChannel, error) {
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(url)
			return err
		},
		retry.Attempts(5),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n).Err(err).Str("url", url).
				Msg("retrying NATS connect")
		}),
	)
	if err != nil {
		return nil, err
	}
	log.Info().Str("url", url).Msg("connected to NATS")
	return &NatsChannel{nc: nc}, nil
}

func (c *NatsChannel) Emit(event string, payload any, parts ...string) error {
	data, err := encodePayload(payload)
	if err != nil {
		return err
	}
	return c.nc.Publish(Subject(event, parts...), data)
}

func (c *NatsChannel) Subscribe(event string, h Handler, parts ...string) error {
	subject := Subject(event, parts...)
	sub, err := c.nc.Subscribe(subject, func(m *nats.Msg) {
		h(m.Data)
	})
	if err != nil {
		return err
	}
	c.subs = append(c.subs, sub)
	log.Debug().Str("subject", subject).Msg("subscribed")
	return nil
}

// Flush waits until all published messages have been processed by the
// server. Useful before shutdown.
func (c *NatsChannel) Flush() error {
	return c.nc.Flush()
}

func (c *NatsChannel) Close() {
	for _, sub := range c.subs {
		sub.Unsubscribe()
	}
	c.nc.Close()
}
