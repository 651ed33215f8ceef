// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete storage implementation. Expected failures are reported
// as sentinel errors that the API layer maps to HTTP status codes; everything
// else is wrapped with the operation that failed.
//
// Authentication lives in the auth subpackage.
package service
