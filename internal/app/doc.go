// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI or server.
//
// An App loads a sheet definition, opens the store it names, builds one grid
// on a scheduler loop and then either drives that loop headless or hands it
// to the terminal front end.
package app
