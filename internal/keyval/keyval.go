// Package keyval provides the keyed string storage the draft bill persists
// into between sessions. The interface exists so the billing layer can be
// tested against an in-memory fake.
package keyval

type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}
