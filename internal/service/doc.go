// Package service implements the registry's use cases on top of the store
// interfaces: user signup, signin and token resolution, and transactional
// registration and listing of third-party APIs.
//
// Services validate input before touching the database, so validation and
// credential failures come back as domain errors without side effects.
// Registration runs in a single transaction and either persists the API with
// all of its endpoints or nothing.
package service
