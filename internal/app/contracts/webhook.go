package contracts

import "context"

// WebhookUsecase reconciles asynchronous provider callbacks. Handle never
// returns transport-visible errors: the provider always receives a success
// acknowledgement and internal failures surface through logs only.
type WebhookUsecase interface {
	Handle(ctx context.Context, rawPayload []byte)
}
