// Package notify delivers best-effort e-mail notifications off the request path.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/medagenda/internal/infra/mailer"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier accepts messages whose delivery failure must not reach the caller.
type Notifier interface {
	Notify(msg Message)
}

type Dispatcher struct {
	sender mailer.Sender
	log    *zap.Logger
	queue  chan Message

	once sync.Once
	done chan struct{}
}

func NewDispatcher(sender mailer.Sender, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan Message, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := d.sender.Send(ctx, msg.To, msg.Subject, msg.Body); err != nil {
			d.log.Warn("notification not delivered",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Notify(msg Message) {
	if msg.To == "" {
		return
	}
	select {
	case d.queue <- msg:
	default:
		d.log.Warn("notification queue full, dropping message", zap.String("to", msg.To))
	}
}

// Close waits for queued messages to be sent.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}

var _ Notifier = (*Dispatcher)(nil)
