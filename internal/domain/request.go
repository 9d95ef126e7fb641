package domain

// Event names for the operations the broker dispatches.
const (
	EventAddKeyAuthority    = "addKeyAuthority"
	EventRemoveKeyAuthority = "removeKeyAuthority"
)

// KeyAuthorityRequest asks to grant or revoke signing authority on one role
// of an account. Weight is only meaningful (and only required) for grants.
type KeyAuthorityRequest struct {
	Type          string  `json:"type"`
	RequestID     uint64  `json:"request_id"`
	Username      string  `json:"username"`
	AuthorizedKey string  `json:"authorizedKey"`
	Role          string  `json:"role"`
	Weight        *uint32 `json:"weight,omitempty"`
}

// Operation is a constructed account-update ready for submission. The
// authority carries the full post-mutation permission map for the role.
type Operation struct {
	Type      string    `json:"type"`
	Account   string    `json:"account"`
	Role      Role      `json:"role"`
	Authority Authority `json:"authority"`
}

// Receipt is returned by the network for an accepted transaction.
type Receipt struct {
	ID       string `json:"id"`
	BlockNum uint32 `json:"block_num"`
	TrxNum   uint32 `json:"trx_num"`
}

// Response is the single outcome every request resolves to. Exactly one of
// the success and failure shapes is populated, and RequestID always echoes
// the original request.
type Response struct {
	Success   bool     `json:"success"`
	RequestID uint64   `json:"request_id"`
	Result    *Receipt `json:"result,omitempty"`
	Error     string   `json:"error,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// Ok builds a success response echoing id.
func Ok(id uint64, receipt Receipt) Response {
	return Response{Success: true, RequestID: id, Result: &receipt}
}

// Fail builds a failure response echoing id.
func Fail(id uint64, msg string) Response {
	return Response{Success: false, RequestID: id, Error: msg}
}
