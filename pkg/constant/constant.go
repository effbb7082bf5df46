package constant

const (
	// CapsuleCookieName is the cookie carrying the single-use proof capsule.
	CapsuleCookieName = "stepup_proof"

	// VerifyPath is the entry point users are redirected to when a
	// protected module is entered without a valid capsule.
	VerifyPath = "/verify"

	// PrincipalKey is the fiber locals key holding the resolved user.
	PrincipalKey = "principal"

	DefaultDeviceName = "Secondary Device"

	MaxPinAttempts = 5
)
