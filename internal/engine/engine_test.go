package engine

import (
	"testing"

	"github.com/usgs/neic-glass3-sub002/internal/record"
)

func TestStubDispatchConfig(t *testing.T) {
	e := NewStub()
	if err := e.Dispatch(map[string]any{"Cmd": "Glass"}); err != nil {
		t.Fatal(err)
	}
}

func TestStubDispatchPickIncrementsPickList(t *testing.T) {
	e := NewStub()
	r := record.Record{
		Kind:   record.KindPick,
		ID:     "p1",
		Site:   record.Site{Station: "BOZ"},
		Time:   1.0,
		Source: record.Source{AgencyID: "US", Author: "glasstest"},
	}
	if err := e.Dispatch(r); err != nil {
		t.Fatal(err)
	}
	if e.PickListSize() != 1 {
		t.Fatalf("expected pick list size 1, got %d", e.PickListSize())
	}
}

func TestStubDispatchDetectionEchoesToSendSink(t *testing.T) {
	e := NewStub()
	var gotType, gotID, gotBody string
	e.SetSendSink(func(msgType, id, body string) {
		gotType, gotID, gotBody = msgType, id, body
	})

	r := record.Record{
		Kind:       record.KindDetection,
		ID:         "evid1",
		Hypocenter: &record.Hypocenter{Latitude: 1, Longitude: 2, Depth: 3, Time: 4},
		Source:     record.Source{AgencyID: "US", Author: "glasstest"},
	}
	if err := e.Dispatch(r); err != nil {
		t.Fatal(err)
	}

	if gotType != "Detection" || gotID != "evid1" || gotBody == "" {
		t.Fatalf("expected echoed detection, got type=%s id=%s body=%s", gotType, gotID, gotBody)
	}
	if e.HypoListSize() != 1 {
		t.Fatalf("expected hypo list size 1, got %d", e.HypoListSize())
	}
}

func TestStubDispatchInvalidRecordReturnsError(t *testing.T) {
	e := NewStub()
	if err := e.Dispatch(record.Record{Kind: record.KindPick}); err == nil {
		t.Fatal("expected error for invalid record")
	}
}

func TestStubStatusCheck(t *testing.T) {
	e := NewStub()
	if !e.StatusCheck() {
		t.Fatal("expected stub to start healthy")
	}
	e.SetHealthy(false)
	if e.StatusCheck() {
		t.Fatal("expected stub to report unhealthy after SetHealthy(false)")
	}
}
