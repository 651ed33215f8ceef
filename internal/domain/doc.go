// Package domain contains the core business entities of the task tracker:
// users, their refresh tokens, and the tasks they own. It is independent of
// any specific infrastructure or delivery mechanism.
package domain
