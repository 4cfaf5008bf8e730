package user

// Error message constants
const (
	ErrMsgRegisterFailed = "failed to register account: %w"
	ErrMsgProfileFailed  = "failed to load profile: %w"
)

// Log message constants
const (
	LogMsgRegisterCalled    = "RegisterAccount called"
	LogMsgAccountRegistered = "Account registered"
)

// Username length bounds, enforced before storage.
const (
	MinUsernameLength = 2
	MaxUsernameLength = 50
)
