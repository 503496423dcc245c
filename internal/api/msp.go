package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gocentral/gocentral/internal/central"
)

const (
	mspCustomersPath = "/msp_api/v1/customers"
	mspResourcePath  = "/msp_api/v1/resource"
)

// MSP wraps the managed-service-provider customer endpoints.
type MSP struct {
	Client *central.Client
}

// GetCustomers lists tenant customers, optionally filtered by name.
func (m *MSP) GetCustomers(ctx context.Context, customerName string, offset, limit int) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("msp service is not configured")
	}

	params := pageParams(offset, limit)
	if customerName != "" {
		params.Set("customer_name", customerName)
	}

	return m.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   mspCustomersPath,
		Params: params,
	})
}

// CreateCustomer provisions a tenant customer. The document follows the
// gateway schema (customer_name, description, group, ...).
func (m *MSP) CreateCustomer(ctx context.Context, customer map[string]any) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("msp service is not configured")
	}
	if len(customer) == 0 {
		return nil, errors.New("customer document is required")
	}
	return m.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   mspCustomersPath,
		Body:   customer,
	})
}

// GetCustomerDetails returns one tenant customer.
func (m *MSP) GetCustomerDetails(ctx context.Context, customerID string) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("msp service is not configured")
	}
	if customerID == "" {
		return nil, errors.New("customer id is required")
	}
	return m.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   mspCustomersPath + "/" + url.PathEscape(customerID),
	})
}

// UpdateCustomer updates a tenant customer document.
func (m *MSP) UpdateCustomer(ctx context.Context, customerID string, customer map[string]any) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("msp service is not configured")
	}
	if customerID == "" {
		return nil, errors.New("customer id is required")
	}
	if len(customer) == 0 {
		return nil, errors.New("customer document is required")
	}
	return m.Client.Execute(ctx, &central.Request{
		Method: http.MethodPut,
		Path:   mspCustomersPath + "/" + url.PathEscape(customerID),
		Body:   customer,
	})
}

// DeleteCustomer removes a tenant customer.
func (m *MSP) DeleteCustomer(ctx context.Context, customerID string) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("msp service is not configured")
	}
	if customerID == "" {
		return nil, errors.New("customer id is required")
	}
	return m.Client.Execute(ctx, &central.Request{
		Method: http.MethodDelete,
		Path:   mspCustomersPath + "/" + url.PathEscape(customerID),
	})
}

// GetResources returns the MSP branding resources.
func (m *MSP) GetResources(ctx context.Context) (*central.Response, error) {
	if m == nil || m.Client == nil {
		return nil, errors.New("msp service is not configured")
	}
	return m.Client.Execute(ctx, &central.Request{Method: http.MethodGet, Path: mspResourcePath})
}
