// Package models holds the GORM table mappings. Domain types carry no ORM
// tags; each model has a FromDomain/ToDomain pair and repositories only
// ever read and write these structs.
//
// Files follow the bounded contexts: identity.go (operators), catalog.go
// (products), partner.go (customers), inventory.go (stock movements),
// trade.go (sales, returns, exchanges) and finance.go (creditors, carnê
// installments, payments, expenses).
package models
