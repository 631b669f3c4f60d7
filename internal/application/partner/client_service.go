package partner

import (
	"context"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/partner"
	"github.com/librestock/backend/internal/domain/shared"
)

// ClientService handles client account business operations
type ClientService struct {
	clientRepo partner.ClientRepository
	recorder   auditapp.Recorder
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, recorder auditapp.Recorder) *ClientService {
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &ClientService{
		clientRepo: clientRepo,
		recorder:   recorder,
	}
}

// Create creates a new client account
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(req.CompanyName)
	if err != nil {
		return nil, err
	}
	client.YachtName = req.YachtName
	client.ContactPerson = req.ContactPerson
	client.Email = req.Email
	client.Phone = req.Phone
	client.BillingAddress = req.BillingAddress
	client.DefaultDeliveryAddress = req.DefaultDeliveryAddress
	client.PaymentTerms = req.PaymentTerms
	client.Notes = req.Notes
	if err := client.SetCreditLimit(req.CreditLimit); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionCreate,
		EntityType: "client",
		EntityID:   client.ID.String(),
		Changes:    &audit.Changes{After: ToClientResponse(client)},
	})

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by its ID
func (s *ClientService) GetByID(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ClientListFilter) ([]ClientResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "company_name"
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.AccountStatus != "" {
		domainFilter.Filters["account_status"] = filter.AccountStatus
	}

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToClientResponses(clients), total, nil
}

// Update updates a client's details
func (s *ClientService) Update(ctx context.Context, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	before := ToClientResponse(client)

	companyName := client.CompanyName
	if req.CompanyName != nil {
		companyName = *req.CompanyName
	}
	yachtName := client.YachtName
	if req.YachtName != nil {
		yachtName = *req.YachtName
	}
	contactPerson := client.ContactPerson
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	email := client.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := client.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := client.Update(companyName, yachtName, contactPerson, email, phone); err != nil {
		return nil, err
	}

	if req.BillingAddress != nil {
		client.BillingAddress = *req.BillingAddress
	}
	if req.DefaultDeliveryAddress != nil {
		client.DefaultDeliveryAddress = *req.DefaultDeliveryAddress
	}
	if req.PaymentTerms != nil {
		client.PaymentTerms = *req.PaymentTerms
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.CreditLimit != nil {
		if err := client.SetCreditLimit(req.CreditLimit); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "client",
		EntityID:   client.ID.String(),
		Changes:    &audit.Changes{Before: before, After: ToClientResponse(client)},
	})

	response := ToClientResponse(client)
	return &response, nil
}

// Delete deletes a client account
func (s *ClientService) Delete(ctx context.Context, clientID uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return err
	}

	if err := s.clientRepo.Delete(ctx, clientID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "client",
		EntityID:   clientID.String(),
		Changes:    &audit.Changes{Before: ToClientResponse(client)},
	})
	return nil
}

// Suspend blocks the account from placing new orders
func (s *ClientService) Suspend(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := client.Suspend(); err != nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Client is already suspended")
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionStatusChange,
		EntityType: "client",
		EntityID:   client.ID.String(),
		Changes:    &audit.Changes{After: ToClientResponse(client)},
	})

	response := ToClientResponse(client)
	return &response, nil
}

// Reactivate restores a suspended or inactive account
func (s *ClientService) Reactivate(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	client.Reactivate()
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionStatusChange,
		EntityType: "client",
		EntityID:   client.ID.String(),
		Changes:    &audit.Changes{After: ToClientResponse(client)},
	})

	response := ToClientResponse(client)
	return &response, nil
}
