package gngenomes

import "context"

type progressKey struct{}

// WithProgress asks a Fetcher to show a progress bar with the given label
// for the transfer made with the returned context.
func WithProgress(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, progressKey{}, label)
}

// ProgressLabel returns the label set by WithProgress.
func ProgressLabel(ctx context.Context) (string, bool) {
	res, ok := ctx.Value(progressKey{}).(string)
	return res, ok && res != ""
}
