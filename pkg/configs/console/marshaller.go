package console

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// load consoled config from a file.
//
// When loading success, returns `(*ConsoleConfig, nil)`.
// Otherwise, returns `(nil, error)`.
func LoadConsoleConfig(filepath string) (*ConsoleConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

// parse and validate config.
//
// Misconfiguration is reported as error, not panic.
func Unmarshal(conf []byte) (out *ConsoleConfig, err error) {
	var m *ConsoleConfigMarshall
	if err := yaml.Unmarshal(conf, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("config is empty")
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("misconfiguration: %v", r)
		}
	}()
	return TrySeal(m), nil
}
