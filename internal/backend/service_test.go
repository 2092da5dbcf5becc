package backend

import (
	"testing"

	"github.com/ytget/sample-downloader/internal/model"
)

func TestEnqueueValidation(t *testing.T) {
	tests := []struct {
		name      string
		urls      []string
		wantCount int
	}{
		{
			name:      "valid https URL",
			urls:      []string{"https://youtube.com/watch?v=abc"},
			wantCount: 1,
		},
		{
			name:      "valid http URL",
			urls:      []string{"http://example.com/video"},
			wantCount: 1,
		},
		{
			name:      "blank entries dropped",
			urls:      []string{"", "   ", "https://youtube.com/watch?v=abc"},
			wantCount: 1,
		},
		{
			name:      "non-http schemes dropped",
			urls:      []string{"ftp://example.com/a", "youtube.com/watch?v=abc"},
			wantCount: 0,
		},
		{
			name:      "surrounding whitespace trimmed",
			urls:      []string{"  https://youtube.com/watch?v=abc  "},
			wantCount: 1,
		},
		{
			name:      "multiple valid URLs",
			urls:      []string{"https://a.com/1", "https://a.com/2", "https://a.com/3"},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(nil, nil, nil)
			added := service.Enqueue(tt.urls)
			if len(added) != tt.wantCount {
				t.Errorf("Enqueue() added %d items, want %d", len(added), tt.wantCount)
			}
			if len(service.List()) != tt.wantCount {
				t.Errorf("List() returned %d items, want %d", len(service.List()), tt.wantCount)
			}
		})
	}
}

func TestEnqueueItemShape(t *testing.T) {
	service := NewService(nil, nil, nil)
	added := service.Enqueue([]string{"  https://youtube.com/watch?v=abc  "})
	if len(added) != 1 {
		t.Fatalf("Enqueue() added %d items, want 1", len(added))
	}

	item := added[0]
	if len(item.ID) != itemIDLength {
		t.Errorf("item ID length = %d, want %d", len(item.ID), itemIDLength)
	}
	if item.URL != "https://youtube.com/watch?v=abc" {
		t.Errorf("item URL = %q, whitespace not trimmed", item.URL)
	}
	if item.Status != model.StatusPending {
		t.Errorf("new item status = %q, want %q", item.Status, model.StatusPending)
	}
}

func TestEnqueuePreservesOrder(t *testing.T) {
	service := NewService(nil, nil, nil)
	urls := []string{"https://a.com/1", "https://a.com/2", "https://a.com/3"}
	service.Enqueue(urls)

	items := service.List()
	for i, item := range items {
		if item.URL != urls[i] {
			t.Errorf("items[%d].URL = %q, want %q", i, item.URL, urls[i])
		}
	}
}

func TestRemove(t *testing.T) {
	service := NewService(nil, nil, nil)
	added := service.Enqueue([]string{"https://a.com/1", "https://a.com/2"})

	if err := service.Remove(added[0].ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	items := service.List()
	if len(items) != 1 || items[0].ID != added[1].ID {
		t.Errorf("after Remove, queue = %+v, want only %s", items, added[1].ID)
	}

	if err := service.Remove("missing0"); err != ErrItemNotFound {
		t.Errorf("Remove(missing) error = %v, want ErrItemNotFound", err)
	}
}

func TestClearFinishedKeepsFailed(t *testing.T) {
	service := NewService(nil, nil, nil)
	added := service.Enqueue([]string{"https://a.com/1", "https://a.com/2", "https://a.com/3"})

	service.updateItem(added[0].ID, func(it *model.QueueItem) { it.Status = model.StatusComplete })
	service.updateItem(added[1].ID, func(it *model.QueueItem) { it.Status = model.StatusFailed })

	service.ClearFinished()

	items := service.List()
	if len(items) != 2 {
		t.Fatalf("after ClearFinished, %d items remain, want 2", len(items))
	}
	if items[0].Status != model.StatusFailed {
		t.Errorf("failed item was removed, want it retained")
	}
	if items[1].Status != model.StatusPending {
		t.Errorf("pending item was removed, want it retained")
	}
}

func TestClearFinishedNoOpWithoutCompleteItems(t *testing.T) {
	service := NewService(nil, nil, nil)
	service.Enqueue([]string{"https://a.com/1", "https://a.com/2", "https://a.com/3"})

	sub := service.Subscribe()
	defer sub.Close()
	<-sub.Updates() // seed

	service.ClearFinished()

	if len(service.List()) != 3 {
		t.Errorf("ClearFinished removed items from an all-pending queue")
	}
	select {
	case <-sub.Updates():
		t.Error("ClearFinished broadcast a snapshot despite changing nothing")
	default:
	}
}

func TestSubscribeSeedsCurrentSnapshot(t *testing.T) {
	service := NewService(nil, nil, nil)
	service.Enqueue([]string{"https://a.com/1", "https://a.com/2"})

	sub := service.Subscribe()
	defer sub.Close()

	snapshot, ok := <-sub.Updates()
	if !ok {
		t.Fatal("Updates() closed before delivering the seed snapshot")
	}
	if len(snapshot) != 2 {
		t.Errorf("seed snapshot has %d items, want 2", len(snapshot))
	}
}

func TestSubscriptionConflation(t *testing.T) {
	service := NewService(nil, nil, nil)

	sub := service.Subscribe()
	defer sub.Close()
	<-sub.Updates() // seed

	// three mutations without the subscriber reading: only the latest
	// snapshot must survive
	service.Enqueue([]string{"https://a.com/1"})
	service.Enqueue([]string{"https://a.com/2"})
	service.Enqueue([]string{"https://a.com/3"})

	snapshot := <-sub.Updates()
	if len(snapshot) != 3 {
		t.Errorf("conflated snapshot has %d items, want 3 (latest state)", len(snapshot))
	}

	select {
	case extra, ok := <-sub.Updates():
		if ok {
			t.Errorf("unexpected extra snapshot with %d items, want conflation", len(extra))
		}
	default:
	}
}

func TestNoDeliveryAfterClose(t *testing.T) {
	service := NewService(nil, nil, nil)
	sub := service.Subscribe()
	<-sub.Updates()

	sub.Close()
	service.Enqueue([]string{"https://a.com/1"})

	if _, ok := <-sub.Updates(); ok {
		t.Error("snapshot delivered after Close")
	}

	// closing twice must be safe
	sub.Close()
}

func TestSnapshotsDoNotAliasState(t *testing.T) {
	service := NewService(nil, nil, nil)
	added := service.Enqueue([]string{"https://a.com/1"})

	items := service.List()
	items[0].Status = model.StatusFailed

	current := service.List()
	if current[0].Status != model.StatusPending {
		t.Error("mutating a List() result changed authoritative state")
	}
	_ = added
}

func TestCancelFlag(t *testing.T) {
	service := NewService(nil, nil, nil)

	if service.cancelled.Load() {
		t.Error("new service starts cancelled")
	}
	service.Cancel()
	if !service.cancelled.Load() {
		t.Error("Cancel() did not set the flag")
	}
	service.ResetCancel()
	if service.cancelled.Load() {
		t.Error("ResetCancel() did not clear the flag")
	}
}
