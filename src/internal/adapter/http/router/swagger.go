package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func registerSwaggerRoutes(r chi.Router) {
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	r.Get("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	r.Get("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Real Estate Ledger API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {"title": "Real Estate Ledger API", "version": "1.0.0"},
  "paths": {
    "/registers": {
      "post": {
        "summary": "Create register",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["description"],
                "properties": {"description": {"type": "string"}, "branch": {"type": "string"}}
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List registers",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Registers fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/registers/{id}": {
      "get": {
        "summary": "Get register",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Register fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/registers/{id}/open": {
      "post": {
        "summary": "Open register and issue session token",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["openingAmount"],
                "properties": {"openingAmount": {"type": "string", "example": "300000"}}
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Opened"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/registers/{id}/close": {
      "post": {
        "summary": "Close register session",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "X-Register-Session", "in": "header", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Closed"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/registers/session": {
      "get": {
        "summary": "Current register session status",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "X-Register-Session", "in": "header", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Status fetched"},
          "401": {"description": "Unauthorized"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/registers/movements": {
      "post": {
        "summary": "Post manual register movement",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "X-Register-Session", "in": "header", "required": true, "schema": {"type": "string"}},
          {"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["kind", "amount", "concept"],
                "properties": {
                  "kind": {"type": "string", "enum": ["INGRESS", "EGRESS"]},
                  "amount": {"type": "string", "example": "300000"},
                  "concept": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Posted"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/registers/{id}/movements": {
      "get": {
        "summary": "Register cash count",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "from", "in": "query", "required": false, "schema": {"type": "string", "format": "date"}},
          {"name": "to", "in": "query", "required": false, "schema": {"type": "string", "format": "date"}}
        ],
        "responses": {
          "200": {"description": "Movements fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/registers/{id}/reconcile": {
      "get": {
        "summary": "Reconcile register balance",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Reconciled"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/bank-accounts": {
      "post": {
        "summary": "Create bank account",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["institution", "accountNumber", "holder", "accountType", "currency"],
                "properties": {
                  "institution": {"type": "string"},
                  "accountNumber": {"type": "string"},
                  "holder": {"type": "string"},
                  "accountType": {"type": "string", "enum": ["CHECKING", "SAVINGS"]},
                  "currency": {"type": "string", "enum": ["PYG", "USD"]},
                  "openingBalance": {"type": "string", "example": "300000"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List bank accounts",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Bank accounts fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/bank-accounts/{id}": {
      "get": {
        "summary": "Get bank account",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Bank account fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/bank-accounts/{id}/statement": {
      "get": {
        "summary": "Bank account statement",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "from", "in": "query", "required": false, "schema": {"type": "string", "format": "date"}},
          {"name": "to", "in": "query", "required": false, "schema": {"type": "string", "format": "date"}}
        ],
        "responses": {
          "200": {"description": "Statement fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/bank-accounts/{id}/reconcile": {
      "get": {
        "summary": "Reconcile bank account balance",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Reconciled"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/deposits": {
      "post": {
        "summary": "Deposit into bank account",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "X-Register-Session", "in": "header", "required": false, "schema": {"type": "string"}},
          {"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["bankAccountId", "amount"],
                "properties": {
                  "bankAccountId": {"type": "integer"},
                  "amount": {"type": "string", "example": "300000"},
                  "depositDate": {"type": "string", "format": "date"},
                  "reference": {"type": "string"},
                  "concept": {"type": "string"},
                  "source": {"type": "string", "enum": ["EXTERNAL", "REGISTER"]}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Deposited"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/deposits/{id}/void": {
      "post": {
        "summary": "Void deposit",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Voided"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/expenses": {
      "post": {
        "summary": "Register supplier expense",
        "security": [{"BasicAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["supplier", "category", "invoiceDate", "amount"],
                "properties": {
                  "supplier": {"type": "string"},
                  "category": {"type": "string"},
                  "detail": {"type": "string"},
                  "invoiceNumber": {"type": "string"},
                  "invoiceDate": {"type": "string", "format": "date"},
                  "amount": {"type": "string", "example": "120000"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List expenses",
        "security": [{"BasicAuth": []}],
        "responses": {"200": {"description": "Expenses"}, "401": {"description": "Unauthorized"}}
      }
    },
    "/expenses/{id}": {
      "get": {
        "summary": "Get expense",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {"200": {"description": "Expense"}, "404": {"description": "Not found"}}
      }
    },
    "/expenses/{id}/void": {
      "post": {
        "summary": "Void pending expense",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Voided"},
          "404": {"description": "Not found"},
          "409": {"description": "Already paid or voided"}
        }
      }
    },
    "/expenses/{id}/pay": {
      "post": {
        "summary": "Pay expense from register or bank account",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "X-Register-Session", "in": "header", "required": false, "schema": {"type": "string"}},
          {"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["method"],
                "properties": {
                  "method": {"type": "string", "enum": ["CASH", "BANK_TRANSFER", "CHECK"]},
                  "bankAccountId": {"type": "integer"},
                  "paidDate": {"type": "string", "format": "date"},
                  "reference": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Paid"},
          "400": {"description": "Validation error"},
          "404": {"description": "Not found"},
          "409": {"description": "Already paid, voided or no open register"},
          "422": {"description": "Insufficient balance"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transfers": {
      "post": {
        "summary": "Transfer between bank accounts",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["sourceAccountId", "destinationAccountId", "amount"],
                "properties": {
                  "sourceAccountId": {"type": "integer"},
                  "destinationAccountId": {"type": "integer"},
                  "amount": {"type": "string", "example": "300000"},
                  "transferDate": {"type": "string", "format": "date"},
                  "concept": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Transferred"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "422": {"description": "Business rule rejected"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/contracts": {
      "post": {
        "summary": "Create contract with installment schedule",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": [
                  "contractNumber",
                  "clientName",
                  "clientDocument",
                  "lotLabel",
                  "contractDate",
                  "totalValue",
                  "installmentCount",
                  "installmentAmount"
                ],
                "properties": {
                  "contractNumber": {"type": "string"},
                  "clientName": {"type": "string"},
                  "clientDocument": {"type": "string"},
                  "lotLabel": {"type": "string"},
                  "subdivisionId": {"type": "integer"},
                  "currency": {"type": "string", "enum": ["PYG", "USD"]},
                  "contractDate": {"type": "string", "format": "date"},
                  "firstDueDate": {"type": "string", "format": "date"},
                  "totalValue": {"type": "string", "example": "300000"},
                  "downPayment": {"type": "string", "example": "300000"},
                  "installmentCount": {"type": "integer"},
                  "installmentAmount": {"type": "string", "example": "300000"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/contracts/{id}": {
      "get": {
        "summary": "Get contract",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Contract fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/contracts/{id}/installments": {
      "get": {
        "summary": "List installments",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Installments fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/contracts/{id}/outstanding": {
      "get": {
        "summary": "Outstanding installments with late fees",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "asOf", "in": "query", "required": false, "schema": {"type": "string", "format": "date"}}
        ],
        "responses": {
          "200": {"description": "Outstanding fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/contracts/{id}/service-charges": {
      "post": {
        "summary": "Add service charge installment",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}},
          {"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["amount", "dueDate"],
                "properties": {
                  "amount": {"type": "string", "example": "300000"},
                  "dueDate": {"type": "string", "format": "date"},
                  "description": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/subdivisions": {
      "post": {
        "summary": "Create subdivision",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name"],
                "properties": {
                  "name": {"type": "string"},
                  "agencyCommission": {"type": "string", "example": "300000"},
                  "ownerCommission": {"type": "string", "example": "300000"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/payments": {
      "post": {
        "summary": "Settle installment",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "X-Register-Session", "in": "header", "required": false, "schema": {"type": "string"}},
          {"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["installmentId", "amountReceived", "method"],
                "properties": {
                  "installmentId": {"type": "integer"},
                  "amountReceived": {"type": "string", "example": "300000"},
                  "paymentDate": {"type": "string", "format": "date"},
                  "method": {"type": "string", "enum": ["CASH", "BANK_TRANSFER", "CHECK", "CARD"]},
                  "bankAccountId": {"type": "integer"},
                  "reference": {"type": "string"},
                  "observations": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Settled"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "409": {"description": "Conflict"},
          "422": {"description": "Business rule rejected"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/quotes": {
      "get": {
        "summary": "List exchange quotes",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Quotes fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "post": {
        "summary": "Record exchange quote",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["source", "target", "buy", "sell"],
                "properties": {
                  "quoteDate": {"type": "string", "format": "date"},
                  "source": {"type": "string", "enum": ["PYG", "USD"]},
                  "target": {"type": "string", "enum": ["PYG", "USD"]},
                  "buy": {"type": "string", "example": "300000"},
                  "sell": {"type": "string", "example": "300000"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Recorded"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "409": {"description": "Conflict"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/quotes/convert": {
      "get": {
        "summary": "Convert amount",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "amount", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "from", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "to", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "date", "in": "query", "required": false, "schema": {"type": "string", "format": "date"}}
        ],
        "responses": {
          "200": {"description": "Converted"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "422": {"description": "Business rule rejected"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/parameters": {
      "get": {
        "summary": "List system parameters",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Parameters fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/parameters/{key}": {
      "put": {
        "summary": "Set system parameter",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "key", "in": "path", "required": true, "schema": {"type": "string"}}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["value"],
                "properties": {"value": {"type": "string"}, "description": {"type": "string"}}
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Updated"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/documents/receipts/{id}": {
      "get": {
        "summary": "Payment receipt",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Receipt built"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/documents/contracts/{id}": {
      "get": {
        "summary": "Contract document",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {"description": "Document built"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/documents/owner-settlements": {
      "get": {
        "summary": "Owner settlement report",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "subdivisionId", "in": "query", "required": true, "schema": {"type": "integer"}},
          {"name": "from", "in": "query", "required": true, "schema": {"type": "string", "format": "date"}},
          {"name": "to", "in": "query", "required": true, "schema": {"type": "string", "format": "date"}}
        ],
        "responses": {
          "200": {"description": "Report built"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/documents/account-statements/{clientDocument}": {
      "get": {
        "summary": "Client account statement",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "clientDocument", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Statement built"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/audit-logs": {
      "get": {
        "summary": "List audit entries",
        "security": [{"BasicAuth": []}],
        "parameters": [{"name": "limit", "in": "query", "required": false, "schema": {"type": "integer"}}],
        "responses": {
          "200": {"description": "Audit entries fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    }
  },
  "components": {"securitySchemes": {"BasicAuth": {"type": "http", "scheme": "basic"}}}
}`
