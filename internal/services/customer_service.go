package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"transport-backend/internal/cache"
	"transport-backend/internal/models"
	"transport-backend/internal/repositories"
)

// CustomerStore is the storage surface for saved customer templates.
type CustomerStore interface {
	Create(ctx context.Context, c *models.Customer) error
	Get(ctx context.Context, id int) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id int) error
}

type CustomerService struct {
	Store CustomerStore
}

func NewCustomerService(store CustomerStore) *CustomerService {
	return &CustomerService{Store: store}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	customer := &models.Customer{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.Store.Create(ctx, customer); err != nil {
		return nil, err
	}
	cache.InvalidateCustomers(ctx)
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	customer, err := s.Store.Get(ctx, id)
	if errors.Is(err, repositories.ErrCustomerNotFound) {
		return nil, ErrNotFound
	}
	return customer, err
}

// ListCustomers serves the template picker; the list is cached because it
// is fetched on every invoice form load.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	if data, ok := cache.GetCustomerList(ctx); ok {
		var customers []*models.Customer
		if err := json.Unmarshal(data, &customers); err == nil {
			return customers, nil
		}
	}

	customers, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(customers); err == nil {
		cache.SetCustomerList(ctx, data)
	}
	return customers, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	customer := &models.Customer{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	err := s.Store.Update(ctx, customer)
	if errors.Is(err, repositories.ErrCustomerNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	cache.InvalidateCustomers(ctx)
	return s.Store.Get(ctx, id)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	err := s.Store.Delete(ctx, id)
	if errors.Is(err, repositories.ErrCustomerNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	cache.InvalidateCustomers(ctx)
	return nil
}
