package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocentral/gocentral/internal/centraltest"
)

func TestGetCustomersFiltersByName(t *testing.T) {
	gateway := centraltest.New(t)

	var query map[string][]string
	gateway.Handle(http.MethodGet, "/msp_api/v1/customers", func(w http.ResponseWriter, r *http.Request) {
		if !centraltest.RequireBearer(w, r, "valid-token") {
			return
		}
		query = r.URL.Query()
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"customers":[],"total":0}`))
	})

	msp := &MSP{Client: newTestClient(gateway)}
	_, err := msp.GetCustomers(context.Background(), "acme", 0, 50)
	require.NoError(t, err)
	require.Equal(t, []string{"acme"}, query["customer_name"])
	require.Equal(t, []string{"50"}, query["limit"])
}

func TestUpdateCustomerPutsDocumentByID(t *testing.T) {
	gateway := centraltest.New(t)

	var body map[string]any
	gateway.Handle(http.MethodPut, "/msp_api/v1/customers/cust-1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"customer_id":"cust-1"}`))
	})

	msp := &MSP{Client: newTestClient(gateway)}
	_, err := msp.UpdateCustomer(context.Background(), "cust-1", map[string]any{"customer_name": "Acme West"})
	require.NoError(t, err)
	require.Equal(t, "Acme West", body["customer_name"])

	_, err = msp.UpdateCustomer(context.Background(), "", map[string]any{"customer_name": "x"})
	require.ErrorContains(t, err, "customer id")
}

func TestDeleteCustomerRequiresID(t *testing.T) {
	gateway := centraltest.New(t)

	var hit bool
	gateway.Handle(http.MethodDelete, "/msp_api/v1/customers/cust-1", func(w http.ResponseWriter, r *http.Request) {
		hit = true
		centraltest.WriteQuota(w, 6, 4999)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})

	msp := &MSP{Client: newTestClient(gateway)}
	_, err := msp.DeleteCustomer(context.Background(), "cust-1")
	require.NoError(t, err)
	require.True(t, hit)

	_, err = msp.DeleteCustomer(context.Background(), "")
	require.ErrorContains(t, err, "customer id")
}
