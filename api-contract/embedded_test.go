package apicontract_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/tuanvumaihuynh/chicken-vending/api-contract"
)

func TestLoad(t *testing.T) {
	doc, err := apicontract.Load(context.Background())
	require.NoError(t, err)

	routes := map[string][]string{
		"/health":                        {http.MethodGet},
		"/health/ready":                  {http.MethodGet},
		"/products":                      {http.MethodGet, http.MethodPost, http.MethodPut},
		"/products/{product_id}":         {http.MethodGet, http.MethodDelete},
		"/buy":                           {http.MethodPost},
		"/transactions":                  {http.MethodGet},
		"/transactions/{transaction_id}": {http.MethodGet},
		"/calculate":                     {http.MethodPost},
		"/add":                           {http.MethodGet},
		"/subtract":                      {http.MethodGet},
		"/multiply":                      {http.MethodGet},
		"/divide":                        {http.MethodGet},
	}

	for path, methods := range routes {
		item := doc.Paths.Find(path)
		require.NotNil(t, item, path)
		for _, method := range methods {
			assert.NotNil(t, item.GetOperation(method), "%s %s", method, path)
		}
	}
}
