package monitor

import (
	"reflect"
	"testing"
)

func TestDistinctTopics(t *testing.T) {
	tests := []struct {
		name   string
		topics []string
		want   []string
	}{
		{
			name:   "duplicates collapse",
			topics: []string{"a", "b", "a"},
			want:   []string{"a", "b"},
		},
		{
			name:   "arrival order irrelevant",
			topics: []string{"b", "a", "b", "a"},
			want:   []string{"a", "b"},
		},
		{
			name:   "single topic",
			topics: []string{"sensors/temp"},
			want:   []string{"sensors/temp"},
		},
		{
			name:   "empty snapshot",
			topics: nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := make([]Message, len(tt.topics))
			for i, topic := range tt.topics {
				snap[i] = Message{Topic: topic, Seq: uint64(i + 1)}
			}
			got := DistinctTopics(snap)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DistinctTopics() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistinctTopicsIdempotent(t *testing.T) {
	snap := []Message{
		{Topic: "b", Seq: 1},
		{Topic: "a", Seq: 2},
		{Topic: "b", Seq: 3},
	}
	first := DistinctTopics(snap)
	second := DistinctTopics(snap)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("DistinctTopics() unstable for same snapshot: %v vs %v", first, second)
	}
}

func TestFiltered(t *testing.T) {
	snap := []Message{
		{Topic: "a", Payload: "1", Seq: 3},
		{Topic: "b", Payload: "x", Seq: 2},
		{Topic: "a", Payload: "2", Seq: 1},
	}

	t.Run("selected topic preserves order", func(t *testing.T) {
		got := Filtered(snap, "a")
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Payload != "1" || got[1].Payload != "2" {
			t.Errorf("Filtered() = %v, want payloads [1 2]", got)
		}
	})

	t.Run("no selection returns snapshot unchanged", func(t *testing.T) {
		got := Filtered(snap, "")
		if !reflect.DeepEqual(got, snap) {
			t.Errorf("Filtered() with empty selection = %v, want snapshot", got)
		}
	})

	t.Run("vanished topic yields empty view", func(t *testing.T) {
		got := Filtered(snap, "gone")
		if len(got) != 0 {
			t.Errorf("Filtered() = %v, want empty", got)
		}
	})
}
