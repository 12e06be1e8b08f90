package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
)

type TransactionService struct {
	repository *repositories.TransactionRepository
}

func NewTransactionService(repository *repositories.TransactionRepository) *TransactionService {
	return &TransactionService{repository: repository}
}

func (s *TransactionService) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *TransactionService) GetAllByPatient(ctx context.Context, patientID string) ([]models.Transaction, error) {
	return s.repository.GetAllByPatient(ctx, patientID)
}

func (s *TransactionService) UpdateStatus(ctx context.Context, id, status string) error {
	return s.repository.UpdateStatus(ctx, id, status)
}
