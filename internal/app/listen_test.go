package app

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/transport"
)

// queueReceiver hands out datagrams in order, then calls drained and
// blocks until ctx is done.
type queueReceiver struct {
	queue   []transport.Datagram
	drained func()
}

func (q *queueReceiver) Receive(ctx context.Context, timeout time.Duration) (transport.Datagram, error) {
	if len(q.queue) > 0 {
		d := q.queue[0]
		q.queue = q.queue[1:]
		return d, nil
	}
	if q.drained != nil {
		q.drained()
	}
	<-ctx.Done()
	return transport.Datagram{}, ctx.Err()
}

func datagram(from *net.UDPAddr, ps ...pdu.PDU) transport.Datagram {
	return transport.Datagram{From: from, Received: capTime, PDUs: ps}
}

func TestListenerCountLimit(t *testing.T) {
	l := &listener{logger: silentLogger(t), rec: testRecorder(t), count: 3}
	r := &queueReceiver{queue: []transport.Datagram{
		datagram(simA, entityState(1, 1), entityState(2, 1)),
		datagram(simA, entityState(3, 1), entityState(4, 1)),
		datagram(simA, entityState(5, 1)),
	}}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.run(ctx, r); err != nil {
		t.Fatalf("run: %v", err)
	}
	if l.seen != 3 {
		t.Errorf("seen = %d, want 3", l.seen)
	}
	if len(r.queue) != 1 {
		t.Errorf("%d datagrams left unread, want 1", len(r.queue))
	}
	if ctx.Err() != nil {
		t.Error("run waited for the context instead of stopping at the count")
	}
}

func TestListenerExerciseFilter(t *testing.T) {
	l := &listener{logger: silentLogger(t), rec: testRecorder(t), exercise: 3}
	bad := transport.Datagram{From: simB, Received: capTime, Raw: []byte{7, 1}, Err: errors.New("short header")}
	ctx, cancel := context.WithCancel(context.Background())
	r := &queueReceiver{
		queue:   []transport.Datagram{datagram(simA, entityState(1, 3), entityState(2, 4)), bad},
		drained: cancel,
	}
	defer cancel()

	if err := l.run(ctx, r); err != nil {
		t.Fatalf("run: %v", err)
	}
	sum := l.rec.sink.GetSummary()
	if sum.Decoded != 1 || sum.Failed != 1 {
		t.Errorf("decoded=%d failed=%d, want 1 and 1", sum.Decoded, sum.Failed)
	}
	if got := sum.ByExercise[3]; got != 1 {
		t.Errorf("exercise 3 PDUs = %d, want 1", got)
	}
}

type failingReceiver struct{ err error }

func (f failingReceiver) Receive(ctx context.Context, timeout time.Duration) (transport.Datagram, error) {
	return transport.Datagram{}, f.err
}

func TestListenerReceiveError(t *testing.T) {
	l := &listener{logger: silentLogger(t), rec: testRecorder(t)}
	want := errors.New("use of closed network connection")
	if err := l.run(context.Background(), failingReceiver{err: want}); !errors.Is(err, want) {
		t.Fatalf("run error = %v, want %v", err, want)
	}
}
