package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"CarePoint/utils"
	"context"
)

type PrescriptionService struct {
	repository *repositories.PrescriptionRepository
}

func NewPrescriptionService(repository *repositories.PrescriptionRepository) *PrescriptionService {
	return &PrescriptionService{repository: repository}
}

func (s *PrescriptionService) Create(ctx context.Context, patientID string, request *models.CreatePrescriptionRequest) (*models.Prescription, error) {
	if err := utils.ValidatePrescriptionRequest(*request); err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		AppointmentID: request.AppointmentID,
		ExpiryDate:    request.ExpiryDate,
	}
	for _, item := range request.Items {
		prescription.Items = append(prescription.Items, models.PrescriptionItem{
			MedicineID: item.MedicineID,
			Quantity:   item.Quantity,
		})
	}

	if err := s.repository.Create(ctx, patientID, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (s *PrescriptionService) GetOwned(ctx context.Context, id, patientID string) (*models.Prescription, error) {
	return s.repository.GetOwned(ctx, id, patientID)
}

func (s *PrescriptionService) GetAllByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	return s.repository.GetAllByPatient(ctx, patientID)
}

func (s *PrescriptionService) CalculateBalance(ctx context.Context, id, patientID string) (*models.PrescriptionBalance, error) {
	return s.repository.CalculateBalance(ctx, id, patientID)
}
