// Package domain defines the core entities of the API registry (users,
// registered APIs and their endpoints) together with the error taxonomy
// shared by the store, service and HTTP layers.
package domain
