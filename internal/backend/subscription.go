package backend

import (
	"github.com/ytget/sample-downloader/internal/model"
)

// Subscription is one consumer of queue snapshot broadcasts. Delivery is
// conflated: when a subscriber lags, only the most recent snapshot is
// retained. After Close no further snapshot is delivered.
type Subscription struct {
	id      int
	ch      chan []model.QueueItem
	service *Service
}

// Updates returns the snapshot channel. It is closed when the subscription
// is closed.
func (sub *Subscription) Updates() <-chan []model.QueueItem {
	return sub.ch
}

// Close tears the subscription down. Safe to call more than once.
func (sub *Subscription) Close() {
	sub.service.unsubscribe(sub.id)
}

// Subscribe registers a snapshot consumer and immediately queues the current
// snapshot so new subscribers do not start from an empty mirror
func (s *Service) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscription{
		id:      s.nextID,
		ch:      make(chan []model.QueueItem, 1),
		service: s,
	}
	s.nextID++
	s.subs[sub.id] = sub

	sub.ch <- model.CloneItems(s.items)
	return sub
}

// unsubscribe removes a subscriber and closes its channel. Publishing holds
// the same mutex, so no send can race the close.
func (s *Service) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok {
		return
	}
	delete(s.subs, id)
	close(sub.ch)
}

// publish delivers the current snapshot to every subscriber, replacing any
// undelivered previous snapshot (last write wins)
func (s *Service) publish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		snapshot := model.CloneItems(s.items)
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- snapshot:
		default:
		}
	}
}
