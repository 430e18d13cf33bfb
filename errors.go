package godas

import "fmt"

// ConfigError reports an invalid, missing or inconsistent acquisition
// parameter. Param names the offending Params field or Build argument.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Param == "" {
		return "godas: " + e.Reason
	}
	return "godas: " + e.Param + ": " + e.Reason
}

func cfgErrf(param, format string, args ...any) error {
	return &ConfigError{Param: param, Reason: fmt.Sprintf(format, args...)}
}
