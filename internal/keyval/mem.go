package keyval

// MemStore is a map-backed Store for tests.
type MemStore struct {
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemStore) Set(key string, value string) error {
	s.values[key] = value
	return nil
}

func (s *MemStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

// Len reports how many keys are stored; test helper.
func (s *MemStore) Len() int {
	return len(s.values)
}
