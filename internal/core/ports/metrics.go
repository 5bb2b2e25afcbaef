package ports

// Metrics records outcomes of core operations.
type Metrics interface {
	// AuthAttempt: action is register, login or change_password.
	AuthAttempt(action, result string)
	// EntryMutation: op is create, update or delete; result applied, noop or error.
	EntryMutation(op, result string)
	// ImageUpload: size is only meaningful on success.
	ImageUpload(result string, size int)
}
