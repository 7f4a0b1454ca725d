package domain

// Store is a tenant boundary. Users, wallets and audit records all belong to
// exactly one store.
type Store struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
