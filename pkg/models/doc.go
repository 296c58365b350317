// Package models provides shared data models and types for the skeleton
// installer.
//
// # Architectures
//
// The generated project uses one of two structural variants:
//   - Flat: a single App module under backend/src/App (default)
//   - Layered: a hexagonal layout with a shared Core kernel and one module
//     per bounded context
//
// Use [Architecture] and its constants:
//
//	arch := models.ParseArchitecture(answer)
//	if arch == models.ArchLayered {
//	    fmt.Println("hexagonal layout selected")
//	}
package models
