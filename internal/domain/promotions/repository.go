package promotions

import "context"

type Repository interface {
	ListPromotions(ctx context.Context, filter ListFilter) ([]Promotion, int64, error)
	GetPromotion(ctx context.Context, id string) (*Promotion, error)
	CreatePromotion(ctx context.Context, promotion *Promotion) error
	UpdatePromotion(ctx context.Context, promotion *Promotion) (bool, error)
	DeletePromotion(ctx context.Context, id string) (bool, error)
}
