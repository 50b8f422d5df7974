package repository

import "github.com/supplychain/mysupply-api/internal/domain/entity"

// CustomerRepository puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	ExistsByEmail(email string) (bool, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Search(term string, limit, offset int) ([]*entity.Customer, error)
	Update(c *entity.Customer) error
	CountActiveOrders(customerID string) (int64, error)
	Delete(id string) error
}
