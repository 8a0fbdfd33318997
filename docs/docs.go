// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "PDV Support",
            "url": "https://github.com/erp/pdv"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Exchange credentials for a bearer token", "operationId": "login"}},
        "/health": {"get": {"tags": ["system"], "summary": "Health check", "operationId": "health"}},
        "/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List operators", "operationId": "listUsers"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Create an operator", "operationId": "createUser"}
        },
        "/products": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "List products", "operationId": "listProducts"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Create a product", "operationId": "createProduct"}
        },
        "/products/low-stock": {"get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Products at or below minimum stock", "operationId": "lowStock"}},
        "/products/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Get a product", "operationId": "getProduct"},
            "put": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Update a product", "operationId": "updateProduct"},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Delete a product", "operationId": "deleteProduct"}
        },
        "/inventory/adjustments": {"post": {"security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Apply a stock delta", "operationId": "adjustStock"}},
        "/inventory/movements": {"get": {"security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "List stock movements", "operationId": "listMovements"}},
        "/customers": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["customers"], "summary": "List customers", "operationId": "listCustomers"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["customers"], "summary": "Create a customer", "operationId": "createCustomer"}
        },
        "/sales": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["sales"], "summary": "List sales", "operationId": "listSales"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["sales"], "summary": "Finalize a sale", "operationId": "finalizeSale"}
        },
        "/sales/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["sales"], "summary": "Get a sale", "operationId": "getSale"}},
        "/returns": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["returns"], "summary": "List returns", "operationId": "listReturns"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["returns"], "summary": "Process a return or exchange", "operationId": "processReturn"}
        },
        "/exchanges/{id}/complete": {"post": {"security": [{"BearerAuth": []}], "tags": ["exchanges"], "summary": "Complete an exchange with a new sale", "operationId": "completeExchange"}},
        "/creditors": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["creditors"], "summary": "List creditors", "operationId": "listCreditors"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["creditors"], "summary": "Open a creditor", "operationId": "createCreditor"}
        },
        "/creditors/{id}/payments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["creditors"], "summary": "Payment history", "operationId": "listPayments"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["creditors"], "summary": "Record a payment", "operationId": "recordPayment"}
        },
        "/creditors/{id}/schedule": {"post": {"security": [{"BearerAuth": []}], "tags": ["creditors"], "summary": "Generate the installment schedule", "operationId": "generateSchedule"}},
        "/creditors/{id}/report": {"get": {"security": [{"BearerAuth": []}], "tags": ["creditors"], "summary": "Render the carnê report", "operationId": "saleReport"}},
        "/installments/{id}/pay": {"post": {"security": [{"BearerAuth": []}], "tags": ["installments"], "summary": "Pay an installment", "operationId": "payInstallment"}},
        "/expenses": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "List expenses", "operationId": "listExpenses"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "Record an expense", "operationId": "createExpense"}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "PDV API",
	Description:      "Point-of-sale backend: catalog, stock ledger, checkout, returns, carnê credit and expenses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
