package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"CarePoint/utils"
	"context"
)

type OrderService struct {
	repository *repositories.OrderRepository
}

func NewOrderService(repository *repositories.OrderRepository) *OrderService {
	return &OrderService{repository: repository}
}

// Create validates the request shape, then runs the admission check and
// persists the order.
func (s *OrderService) Create(ctx context.Context, patientID string, request *models.CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateOrderRequest(*request); err != nil {
		return nil, err
	}
	return s.repository.Create(ctx, patientID, request.Items)
}

func (s *OrderService) GetByID(ctx context.Context, patientID, id string) (*models.Order, error) {
	return s.repository.GetByID(ctx, patientID, id)
}

func (s *OrderService) GetAllByPatient(ctx context.Context, patientID string) ([]models.Order, error) {
	return s.repository.GetAllByPatient(ctx, patientID)
}
