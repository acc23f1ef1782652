package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usgs/neic-glass3-sub002/internal/worker"
)

type fakeSource struct {
	messages []string
	typeTag  string
}

func (f *fakeSource) FetchRaw() (string, string) {
	if len(f.messages) == 0 {
		return "", f.typeTag
	}
	m := f.messages[0]
	f.messages = f.messages[1:]
	return m, f.typeTag
}

func TestStageParsesAndEnqueuesGlobalPick(t *testing.T) {
	src := &fakeSource{
		messages: []string{"228041013 22637648 1 BOZ BHZ US 00 20150303000044.175 P -1.0000 U  ? m 1.050 2.650 0.0 0.000000 3.49 0.000000 0.000000"},
		typeTag:  TypeGPick,
	}
	s := NewStage("test-input", "US", "glasstest", -1, src, nil)

	result := s.tick(s.Base)
	assert.Equal(t, 1, s.Data().Size())
	_ = result

	rec, ok := s.Data().Pop()
	require.True(t, ok)
	assert.Equal(t, "P", rec.Phase)
}

func TestStageIdleOnEmptyMessage(t *testing.T) {
	src := &fakeSource{typeTag: TypeGPick}
	s := NewStage("test-input", "US", "glasstest", -1, src, nil)
	r := s.tick(s.Base)
	assert.Equal(t, 0, s.Data().Size())
	assert.Equal(t, worker.Idle, r)
}

func TestStageBackPressure(t *testing.T) {
	src := &fakeSource{
		messages: []string{
			"57647 AK GLI BHZ -- 1568999913.12 P",
			"57648 AK GLI BHZ -- 1568999914.12 P",
			"57649 AK GLI BHZ -- 1568999915.12 P",
		},
		typeTag: TypeSimplePick,
	}
	s := NewStage("test-input", "US", "glasstest", 2, src, nil)

	for i := 0; i < 2; i++ {
		s.tick(s.Base)
	}
	assert.Equal(t, 2, s.Data().Size())

	// third tick: queue is full, back-pressure applies, nothing consumed.
	s.tick(s.Base)
	assert.Equal(t, 2, s.Data().Size())
	assert.Equal(t, 1, len(src.messages))
}

func TestStageDiscardsUnrecognizedType(t *testing.T) {
	src := &fakeSource{messages: []string{"some data"}, typeTag: "bogus"}
	s := NewStage("test-input", "US", "glasstest", -1, src, nil)
	s.tick(s.Base)
	assert.Equal(t, 0, s.Data().Size())
}
