package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConsumer struct {
	messages      []string
	lastHeartbeat time.Time
}

func (c *fakeConsumer) PollString(timeout time.Duration) string {
	if len(c.messages) == 0 {
		return ""
	}
	m := c.messages[0]
	c.messages = c.messages[1:]
	return m
}
func (c *fakeConsumer) LastHeartbeatTime() time.Time     { return c.lastHeartbeat }
func (c *fakeConsumer) SetLastHeartbeatTime(t time.Time) { c.lastHeartbeat = t }

func TestBrokerSourcePollsAndTagsJSON(t *testing.T) {
	consumer := &fakeConsumer{messages: []string{`{"Type":"Pick"}`}, lastHeartbeat: time.Now()}
	src := NewBrokerSource(consumer, time.Minute, nil)

	msg, typeTag := src.FetchRaw()
	assert.Equal(t, `{"Type":"Pick"}`, msg)
	assert.Equal(t, TypeJSON, typeTag)
}

func TestBrokerSourceStaleHeartbeatResetsClock(t *testing.T) {
	stale := time.Now().Add(-time.Hour)
	consumer := &fakeConsumer{lastHeartbeat: stale}
	src := NewBrokerSource(consumer, time.Minute, nil)

	src.FetchRaw()

	assert.True(t, consumer.LastHeartbeatTime().After(stale))
}

func TestBrokerSourceHeartbeatCheckDisabled(t *testing.T) {
	stale := time.Now().Add(-time.Hour)
	consumer := &fakeConsumer{lastHeartbeat: stale}
	src := NewBrokerSource(consumer, -1, nil)

	src.FetchRaw()

	assert.Equal(t, stale, consumer.LastHeartbeatTime())
}
