package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
)

// Operator errors
var (
	ErrOperatorNotFound = errors.New("operator not found")
	ErrOperatorExists   = errors.New("user already has an operator profile")
)

// OperatorService manages operator company records and their approval
// lifecycle
type OperatorService struct {
	operators database.OperatorStore
	users     database.UserStore
	logger    *logrus.Logger
}

// NewOperatorService creates a new OperatorService
func NewOperatorService(operators database.OperatorStore, users database.UserStore, logger *logrus.Logger) *OperatorService {
	return &OperatorService{
		operators: operators,
		users:     users,
		logger:    logger,
	}
}

// CreateOperator registers a company profile for a user. The profile
// starts pending until an admin approves it.
func (s *OperatorService) CreateOperator(req *models.CreateOperatorRequest) (*models.Operator, error) {
	user, err := s.users.GetUser(req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.operators.GetOperatorByUserID(req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrOperatorExists
	}

	operator := &models.Operator{
		UserID:       req.UserID,
		CompanyName:  req.CompanyName,
		License:      req.License,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Status:       models.OperatorStatusPending,
	}
	if err := s.operators.CreateOperator(operator); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"operator_id": operator.ID,
		"user_id":     operator.UserID,
	}).Info("Operator registered")

	return operator, nil
}

// GetOperator retrieves an operator by ID
func (s *OperatorService) GetOperator(id string) (*models.Operator, error) {
	operator, err := s.operators.GetOperator(id)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, ErrOperatorNotFound
	}
	return operator, nil
}

// GetOperatorByUserID retrieves the operator profile owned by a user
func (s *OperatorService) GetOperatorByUserID(userID string) (*models.Operator, error) {
	operator, err := s.operators.GetOperatorByUserID(userID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, ErrOperatorNotFound
	}
	return operator, nil
}

// UpdateOperator applies an admin patch to an operator record
func (s *OperatorService) UpdateOperator(id string, req *models.UpdateOperatorRequest) (*models.Operator, error) {
	operator, err := s.GetOperator(id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		switch *req.Status {
		case models.OperatorStatusPending, models.OperatorStatusApproved, models.OperatorStatusSuspended:
			operator.Status = *req.Status
		default:
			return nil, models.ValidationError("unknown operator status")
		}
	}
	if req.CompanyName != nil {
		operator.CompanyName = *req.CompanyName
	}
	if req.ContactEmail != nil {
		operator.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		operator.ContactPhone = *req.ContactPhone
	}

	if err := s.operators.UpdateOperator(operator); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"operator_id": operator.ID,
		"status":      operator.Status,
	}).Info("Operator updated")

	return operator, nil
}

// ListOperators returns all operators, optionally filtered by status
func (s *OperatorService) ListOperators(status models.OperatorStatus) ([]models.Operator, error) {
	if status == "" {
		return s.operators.ListOperators()
	}
	return s.operators.OperatorsByStatus(status)
}
