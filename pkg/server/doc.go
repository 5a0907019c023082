// Package server assembles the assetd HTTP server: stores, the
// authorization engine, middleware and the gorilla/mux router.
package server
