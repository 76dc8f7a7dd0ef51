package services

import (
	"stagefront/internal/models"
)

// ProductRepository defines the product repository interface for this service
type ProductRepository interface {
	Create(eventID int, req *models.ProductCreateRequest) (*models.Product, error)
	GetByID(id int) (*models.Product, error)
	GetByEvent(eventID int) ([]*models.Product, error)
	Update(id int, req *models.ProductCreateRequest) (*models.Product, error)
	Delete(id int) error
}

// ProductService handles merchandise management and stock
type ProductService struct {
	productRepo ProductRepository
	eventRepo   TicketEventRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo ProductRepository, eventRepo TicketEventRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		eventRepo:   eventRepo,
	}
}

// GetByEvent returns all merchandise for an event
func (s *ProductService) GetByEvent(eventID int) ([]*models.Product, error) {
	return s.productRepo.GetByEvent(eventID)
}

// GetByID returns a single product
func (s *ProductService) GetByID(id int) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct creates merchandise on an event owned by the organizer
func (s *ProductService) CreateProduct(eventID, organizerID int, req *models.ProductCreateRequest) (*models.Product, error) {
	if err := s.requireEventOwner(eventID, organizerID); err != nil {
		return nil, err
	}

	return s.productRepo.Create(eventID, req)
}

// UpdateProduct updates merchandise after checking event ownership
func (s *ProductService) UpdateProduct(productID, organizerID int, req *models.ProductCreateRequest) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if err := s.requireEventOwner(product.EventID, organizerID); err != nil {
		return nil, err
	}

	return s.productRepo.Update(productID, req)
}

// DeleteProduct deletes merchandise after checking event ownership
func (s *ProductService) DeleteProduct(productID, organizerID int) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}

	if err := s.requireEventOwner(product.EventID, organizerID); err != nil {
		return err
	}

	return s.productRepo.Delete(productID)
}

func (s *ProductService) requireEventOwner(eventID, organizerID int) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}

	if event.OrganizerID != organizerID {
		return models.ErrUnauthorized
	}

	return nil
}
