// Package cli implements the interactive storefront terminal.
//
// The REPL reads one command per line and dispatches it to App. Catalog,
// review and remote cart commands go to the API; cart commands change the
// local cart, which is persisted and survives restarts. Type "help" for the
// command list.
package cli
