package http

import (
	"context"

	"golang.org/x/sync/singleflight"
)

var reportBuildGroup singleflight.Group

// singleflightBuild collapses concurrent identical report builds into one
// computation while still honouring caller cancellation.
func singleflightBuild(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	resultChan := reportBuildGroup.DoChan(key, func() (interface{}, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		return res.Val, res.Err
	}
}
