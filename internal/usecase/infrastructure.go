package usecase

import "context"

type ChangeEventProducer interface {
	PublishChange(ctx context.Context, event *ChangeEvent) error
}
