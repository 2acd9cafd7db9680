package models

// ResultCode is the application-level outcome code carried in the
// "result" field of every response envelope. Zero means success; the
// negative sentinels follow the numbering convention established by
// earlier revisions of the API, but handlers never deal in raw
// integers — they map error kinds to codes through [ResultForError]
// in the transport layer.
type ResultCode int

const (
	// ResultOK indicates the operation completed successfully.
	ResultOK ResultCode = 0

	// ResultError indicates an unexpected server-side failure,
	// typically a storage error. Details are logged, not leaked.
	ResultError ResultCode = -1

	// ResultNotFound indicates the addressed entity does not exist.
	ResultNotFound ResultCode = -2

	// ResultBadCredentials indicates a failed login attempt. Wrong
	// password and unknown username are deliberately not distinguished
	// here to avoid leaking which usernames exist.
	ResultBadCredentials ResultCode = -3

	// ResultForbidden indicates the authenticated identity's scope does
	// not permit the requested operation.
	ResultForbidden ResultCode = -4

	// ResultTokenInvalid indicates the presented token is missing,
	// malformed, expired, or carries an invalid signature.
	ResultTokenInvalid ResultCode = -5

	// ResultBadRequest indicates a malformed or invalid request payload.
	ResultBadRequest ResultCode = -6
)

// Message returns the user-facing message for the code. Handlers may
// override it with a more specific text (e.g. the login greeting).
func (c ResultCode) Message() string {
	switch c {
	case ResultOK:
		return "OK"
	case ResultNotFound:
		return "User does not exist."
	case ResultBadCredentials:
		return "Login failed. Invalid username or password."
	case ResultForbidden:
		return "Forbidden"
	case ResultTokenInvalid:
		return "Invalid or expired token"
	case ResultBadRequest:
		return "Invalid request payload"
	default:
		return "Error occurred!"
	}
}

// Response is the uniform envelope returned by every route.
//
// Success bodies carry Result == [ResultOK] plus, depending on the
// route, a token ("/login") or a data list ("/users"). Error bodies
// carry a nonzero Result and a message; no other field is populated,
// so the data shape stays constant across error paths.
type Response struct {
	Result  ResultCode `json:"result"`
	Message string     `json:"message,omitempty"`
	Token   string     `json:"token,omitempty"`
	Data    []User     `json:"data,omitempty"`
}
