// Package services contains the application services of the storefront
// client: authentication (password, Google OAuth, password reset), catalog
// reads, the server-side cart mirror and product reviews.
//
// Services are thin wrappers over client.Client. They normalize API payloads
// into models types and own the side effects on local state (credentials,
// session storage) that each API call implies.
package services
