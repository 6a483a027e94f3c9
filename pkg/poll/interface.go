package poll

import (
	"context"

	"github.com/Alwanly/service-feed-poller/internal/models"
)

// FetchRequest carries the cursor parameters of one fetch
type FetchRequest struct {
	Offset         int64
	Limit          int
	Timeout        int
	AllowedUpdates []string
}

// Fetcher is the feed side the poller reads from. GetUpdates may block for up
// to req.Timeout seconds; an empty result on timeout is not an error.
type Fetcher interface {
	GetUpdates(ctx context.Context, req FetchRequest) ([]models.Update, error)
}

// DisconnectNotifier is implemented by fetchers that report dropped
// connections out of band.
type DisconnectNotifier interface {
	Disconnects() <-chan error
}

// Dispatcher receives every fetched update, in fetch order. Dispatch must not
// wait for the update to be processed.
type Dispatcher interface {
	Dispatch(ctx context.Context, update models.Update)
}

// Hooks are the lifecycle callbacks the poller itself invokes
type Hooks interface {
	// OnInit receives the starting config as a plain mapping; an error aborts Run
	OnInit(ctx context.Context, state map[string]any) error
	// OnFailure is told about every failed fetch
	OnFailure(ctx context.Context, err error)
}

// Poller defines the interface for the update polling loop
type Poller interface {
	// Run polls until ctx is cancelled. It only returns early if OnInit fails.
	Run(ctx context.Context) error
}
