package controller

import "context"

type contextKey int

const (
	nonceCtxKey contextKey = iota
	viewerCtxKey
)

func withNonce(ctx context.Context, nonce string) context.Context {
	return context.WithValue(ctx, nonceCtxKey, nonce)
}

func (c controller) getNonceFromCtx(ctx context.Context) string {
	nonce, ok := ctx.Value(nonceCtxKey).(string)
	if !ok {
		return ""
	}

	return nonce
}

func withViewer(ctx context.Context, v *viewer) context.Context {
	return context.WithValue(ctx, viewerCtxKey, v)
}

func (c controller) getViewerFromCtx(ctx context.Context) *viewer {
	v, ok := ctx.Value(viewerCtxKey).(*viewer)
	if !ok {
		return nil
	}

	return v
}
