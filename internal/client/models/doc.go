// Package models defines the client-side data types exchanged with the
// storefront API and persisted locally.
//
// The API is loose about shapes: ids arrive as "_id" or "id", categories as an
// object or a bare name, sizes as numbers or strings. The From* helpers in
// this package absorb those differences with gjson so the rest of the client
// only sees normalized values.
package models
