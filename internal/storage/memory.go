package storage

// Memory is a throwaway in-process KV. It backs the --ephemeral run
// mode and keeps tests off the filesystem.
type Memory struct {
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Load(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Save(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
