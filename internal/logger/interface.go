package logger

// Logger provides structured logging with a component tag and free-form fields.
type Logger interface {
	Info(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Debug(component, message string, fields map[string]interface{})
}

// Nop discards everything. Used by tests and as a default when no logger
// is injected.
type Nop struct{}

func (Nop) Info(string, string, map[string]interface{}) {}
func (Nop) Error(string, error, map[string]interface{}) {}
func (Nop) Warning(string, string, map[string]interface{}) {}
func (Nop) Debug(string, string, map[string]interface{}) {}
