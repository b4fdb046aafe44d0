package ports

import "context"

// Publisher pushes a raw message to a notification target (an SNS topic ARN).
type Publisher interface {
	PublishRaw(ctx context.Context, arn string, payload []byte) error
}
