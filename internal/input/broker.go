package input

import (
	"time"

	"github.com/usgs/neic-glass3-sub002/internal/logx"
)

// Consumer is the pluggable message-broker client collaborator: a
// thin facade over whatever transport (Kafka, ActiveMQ, etc.) a
// deployment wires in. BrokerSource only depends on this interface,
// never on a concrete transport.
type Consumer interface {
	// PollString returns the next available message body, blocking up
	// to timeout for one to arrive, or "" on timeout.
	PollString(timeout time.Duration) string
	LastHeartbeatTime() time.Time
	SetLastHeartbeatTime(t time.Time)
}

// BrokerSource polls a Consumer for JSON messages, watching for a
// stalled heartbeat.
type BrokerSource struct {
	Consumer          Consumer
	HeartbeatInterval time.Duration // <0 disables the check
	pollTimeout       time.Duration
	log               *logx.Logger
}

// NewBrokerSource constructs a BrokerSource. heartbeatInterval < 0
// disables the stalled-heartbeat check.
func NewBrokerSource(consumer Consumer, heartbeatInterval time.Duration, log *logx.Logger) *BrokerSource {
	return &BrokerSource{
		Consumer:          consumer,
		HeartbeatInterval: heartbeatInterval,
		pollTimeout:       100 * time.Millisecond,
		log:               log,
	}
}

// FetchRaw implements Source. All broker messages are tagged as JSON.
func (b *BrokerSource) FetchRaw() (string, string) {
	if b.Consumer == nil {
		return "", TypeJSON
	}

	if b.HeartbeatInterval >= 0 {
		elapsed := time.Since(b.Consumer.LastHeartbeatTime())
		if elapsed > b.HeartbeatInterval {
			if b.log != nil {
				b.log.Error().Str("elapsed", elapsed.String()).Log("input: no heartbeat message seen from broker topic(s)")
			}
			// Reset the clock so a sustained outage logs one error per
			// interval rather than one per tick.
			b.Consumer.SetLastHeartbeatTime(time.Now())
		}
	}

	return b.Consumer.PollString(b.pollTimeout), TypeJSON
}
