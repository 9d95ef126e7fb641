package domain

// Role identifies one of the graduated account privilege levels.
type Role string

const (
	RoleActive  Role = "Active"
	RolePosting Role = "Posting"
	RoleOwner   Role = "Owner"
	RoleMemo    Role = "Memo"
)

// Roles lists the valid roles in the order they are reported to callers.
var Roles = []Role{RoleActive, RolePosting, RoleOwner, RoleMemo}

// ParseRole maps a wire role string onto a Role.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if s == string(r) {
			return r, true
		}
	}
	return "", false
}

// RoleKey is one key slot of an account. Private, when present, is a vault
// record (never a clear private key); Public is the network-encoded key.
type RoleKey struct {
	Public  string `json:"public"`
	Private string `json:"private,omitempty"`
}

// Authority is the on-chain permission map for one role of an account.
type Authority struct {
	WeightThreshold uint32            `json:"weight_threshold"`
	AccountAuths    map[string]uint32 `json:"account_auths,omitempty"`
	KeyAuths        map[string]uint32 `json:"key_auths"`
}

// Clone deep-copies the authority so mutations never leak into stored state.
func (a Authority) Clone() Authority {
	out := Authority{WeightThreshold: a.WeightThreshold}
	if a.AccountAuths != nil {
		out.AccountAuths = make(map[string]uint32, len(a.AccountAuths))
		for k, v := range a.AccountAuths {
			out.AccountAuths[k] = v
		}
	}
	out.KeyAuths = make(map[string]uint32, len(a.KeyAuths))
	for k, v := range a.KeyAuths {
		out.KeyAuths[k] = v
	}
	return out
}

// Account is a named account held in the keychain together with whatever
// key material and on-chain authority state is known for it.
type Account struct {
	Name        string             `json:"name"`
	Keys        map[Role]RoleKey   `json:"keys"`
	Authorities map[Role]Authority `json:"authorities,omitempty"`
}

// Key returns the key slot for role, if any.
func (a *Account) Key(role Role) (RoleKey, bool) {
	k, ok := a.Keys[role]
	return k, ok
}

// Authority returns the known on-chain authority for role; a zero-value
// authority with defaulted threshold when none is recorded.
func (a *Account) Authority(role Role) Authority {
	if auth, ok := a.Authorities[role]; ok {
		return auth.Clone()
	}
	return Authority{WeightThreshold: 1, KeyAuths: map[string]uint32{}}
}
