// Package mock provides test doubles for the ai package interfaces.
//
// The mocks use function fields for behavior injection and track call counts
// for test assertions. Default behaviors are deterministic so tests can rely
// on stable outputs without configuring every mock.
package mock
