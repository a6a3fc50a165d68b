package repository

import (
	orderRepo "efood-checkout/internal/repository/order"
	sessionRepo "efood-checkout/internal/repository/session"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Session sessionRepo.IRepository
	Order   orderRepo.IRepository
}
