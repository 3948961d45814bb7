package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// endpointDoc is one entry in the self-describing endpoint catalogue served
// at /api/docs.
type endpointDoc struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	RequiresAuth bool   `json:"requiresAuth,omitempty"`
	Description  string `json:"description"`
}

// DocsHandler serves the endpoint catalogue plus a redacted view of the
// service configuration.
type DocsHandler struct {
	version    string
	factoryURL string
	dbHost     string
}

func NewDocsHandler(version, factoryURL, dbHost string) *DocsHandler {
	return &DocsHandler{version: version, factoryURL: factoryURL, dbHost: dbHost}
}

var endpointCatalogue = []endpointDoc{
	{Method: "POST", Path: "/api/auth", Description: "Register a new user"},
	{Method: "PUT", Path: "/api/auth", Description: "Login existing user"},
	{Method: "DELETE", Path: "/api/auth", RequiresAuth: true, Description: "Logout a user"},
	{Method: "GET", Path: "/api/user/me", RequiresAuth: true, Description: "Get authenticated user"},
	{Method: "GET", Path: "/api/user", RequiresAuth: true, Description: "Gets a list of users"},
	{Method: "PUT", Path: "/api/user/:userId", RequiresAuth: true, Description: "Update user"},
	{Method: "DELETE", Path: "/api/user/:userId", RequiresAuth: true, Description: "Delete a user"},
	{Method: "GET", Path: "/api/order/menu", Description: "Get the pizza menu"},
	{Method: "PUT", Path: "/api/order/menu", RequiresAuth: true, Description: "Add an item to the menu"},
	{Method: "GET", Path: "/api/order", RequiresAuth: true, Description: "Get the orders for the authenticated user"},
	{Method: "POST", Path: "/api/order", RequiresAuth: true, Description: "Create an order for the authenticated user"},
	{Method: "GET", Path: "/api/franchise", Description: "List the franchises"},
	{Method: "GET", Path: "/api/franchise/:userId", RequiresAuth: true, Description: "List a user's franchises"},
	{Method: "POST", Path: "/api/franchise", RequiresAuth: true, Description: "Create a new franchise"},
	{Method: "DELETE", Path: "/api/franchise/:franchiseId", RequiresAuth: true, Description: "Delete a franchise"},
	{Method: "POST", Path: "/api/franchise/:franchiseId/store", RequiresAuth: true, Description: "Create a new franchise store"},
	{Method: "DELETE", Path: "/api/franchise/:franchiseId/store/:storeId", RequiresAuth: true, Description: "Delete a franchise store"},
}

func (h *DocsHandler) Docs(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"version":   h.version,
		"endpoints": endpointCatalogue,
		"config": map[string]string{
			"factory": h.factoryURL,
			"db":      h.dbHost,
		},
	})
}

// Welcome handles GET / with the service banner.
func Welcome(version string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "welcome to JWT Pizza",
			"version": version,
		})
	}
}
