package hermes

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestResultMessageIDIgnoresTrigger(t *testing.T) {
	a := ResultComputedEvent{
		UniversityID:    "u-1",
		TotalScore:      1234.5,
		EstimatedBudget: 9_876_543.21,
		TotalHeadcount:  750,
		Trigger:         "allocator.university.u-1.updated",
		Timestamp:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	b := a
	b.Trigger = "allocator.weights.updated"
	b.Timestamp = a.Timestamp.Add(time.Minute)

	if a.MessageID() != b.MessageID() {
		t.Errorf("same figures should share an id: %s vs %s", a.MessageID(), b.MessageID())
	}
	if !strings.HasPrefix(a.MessageID(), "result-u-1-") {
		t.Errorf("unexpected id %s", a.MessageID())
	}

	c := a
	c.TotalScore = math.Nextafter(a.TotalScore, math.Inf(1))
	if a.MessageID() == c.MessageID() {
		t.Error("a changed score should change the id")
	}
	d := a
	d.UniversityID = "u-2"
	if a.MessageID() == d.MessageID() {
		t.Error("ids must differ across universities")
	}
}

func TestMessageIDOnlyForDeduplicatedEvents(t *testing.T) {
	if _, ok := messageID(UniversityEvent{UniversityID: "u-1"}); ok {
		t.Error("university events carry no message id")
	}
	if _, ok := messageID(WeightsUpdatedEvent{}); ok {
		t.Error("weights events carry no message id")
	}
	id, ok := messageID(ResultComputedEvent{UniversityID: "u-1"})
	if !ok || id == "" {
		t.Error("result events should carry a message id")
	}
}

func TestEncodeMsg(t *testing.T) {
	msg, err := encodeMsg("allocator.weights.updated", WeightsUpdatedEvent{WeightResearch: 0.05})
	if err != nil {
		t.Fatalf("encodeMsg: %v", err)
	}
	if msg.Subject != "allocator.weights.updated" {
		t.Errorf("unexpected subject %s", msg.Subject)
	}
	if got := msg.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("unexpected content type %q", got)
	}
	if !strings.Contains(string(msg.Data), `"weight_research":0.05`) {
		t.Errorf("unexpected payload %s", msg.Data)
	}

	if _, err := encodeMsg("allocator.x", math.NaN()); err == nil {
		t.Error("expected encode error for NaN")
	}
}
