package events

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory. Tests use it to assert on side effects.
type Recorder struct {
	mu     sync.Mutex
	Events []Recorded
}

type Recorded struct {
	Topic string
	Key   string
	Type  string
	Data  any
}

func (r *Recorder) Publish(_ context.Context, topic, key, eventType string, data any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Recorded{Topic: topic, Key: key, Type: eventType, Data: data})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}

func (r *Recorder) Last() (Recorded, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Events) == 0 {
		return Recorded{}, false
	}
	return r.Events[len(r.Events)-1], true
}
