// Package cart is the client-side shopping cart: a pure reducer over line
// items keyed by (product, size) and a Store that serializes transitions,
// persists every resulting state and rehydrates it at startup.
package cart
