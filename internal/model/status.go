package model

// QueueStatus represents the lifecycle state of a queue item
type QueueStatus string

const (
	// StatusPending means the item is queued and nothing has been fetched yet
	StatusPending QueueStatus = "pending"

	// StatusFetching means metadata resolution is in progress
	StatusFetching QueueStatus = "fetching"

	// StatusReady means metadata is resolved and the item awaits download
	StatusReady QueueStatus = "ready"

	// StatusDownloading means the audio transfer/transcode is in progress
	StatusDownloading QueueStatus = "downloading"

	// StatusComplete means the item finished successfully
	StatusComplete QueueStatus = "complete"

	// StatusFailed means the item failed with an error
	StatusFailed QueueStatus = "failed"
)

// String returns the string representation of QueueStatus
func (qs QueueStatus) String() string {
	return string(qs)
}

// IsActionable returns true if the item can be handed to a materialize call.
// Both pending and ready qualify: ready occurs when metadata was pre-fetched
// without starting a download.
func (qs QueueStatus) IsActionable() bool {
	return qs == StatusPending || qs == StatusReady
}

// IsActive returns true if the item is being worked on right now
func (qs QueueStatus) IsActive() bool {
	return qs == StatusFetching || qs == StatusDownloading
}

// IsTerminal returns true if the item reached a final state
func (qs QueueStatus) IsTerminal() bool {
	return qs == StatusComplete || qs == StatusFailed
}
