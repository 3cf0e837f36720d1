package ports

// Notifier surfaces short-lived messages to the operator.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
