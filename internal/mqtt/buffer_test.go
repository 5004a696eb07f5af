package mqtt

import "testing"

func msg(n byte) bufferedMsg {
	return bufferedMsg{topic: Topic, payload: []byte{n}, qos: 0}
}

func TestRingBufferFIFO(t *testing.T) {
	r := newRingBuffer(4)

	r.push(msg(1))
	r.push(msg(2))
	r.push(msg(3))
	if r.len() != 3 {
		t.Fatalf("len = %d, want 3", r.len())
	}

	got := r.drainAll()
	if len(got) != 3 {
		t.Fatalf("drained %d messages, want 3", len(got))
	}
	for i, m := range got {
		if m.payload[0] != byte(i+1) {
			t.Errorf("message %d: payload %v, want %d", i, m.payload, i+1)
		}
	}

	if r.len() != 0 {
		t.Errorf("len after drain = %d, want 0", r.len())
	}
	if r.drainAll() != nil {
		t.Error("second drain should return nil")
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	r := newRingBuffer(3)

	for n := byte(1); n <= 5; n++ {
		r.push(msg(n))
	}
	if r.len() != 3 {
		t.Fatalf("len = %d, want capacity 3", r.len())
	}

	got := r.drainAll()
	want := []byte{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("drained %d messages, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.payload[0] != want[i] {
			t.Errorf("message %d: payload %v, want %d", i, m.payload, want[i])
		}
	}
}

func TestRingBufferWrapAfterDrain(t *testing.T) {
	r := newRingBuffer(2)

	r.push(msg(1))
	r.drainAll()

	// Refill past the old head position.
	r.push(msg(2))
	r.push(msg(3))

	got := r.drainAll()
	if len(got) != 2 || got[0].payload[0] != 2 || got[1].payload[0] != 3 {
		t.Errorf("drained %v, want [2 3]", got)
	}
}

func TestRingBufferPreservesAttributes(t *testing.T) {
	r := newRingBuffer(2)
	r.push(bufferedMsg{topic: TopicSystem, payload: []byte("x"), qos: 1, retained: true})

	got := r.drainAll()
	if len(got) != 1 {
		t.Fatalf("drained %d, want 1", len(got))
	}
	m := got[0]
	if m.topic != TopicSystem || m.qos != 1 || !m.retained {
		t.Errorf("message attributes lost: %+v", m)
	}
}
