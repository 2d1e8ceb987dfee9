package common

// Keys under which client state is persisted in the local store.
// They mirror the backend web client's localStorage keys so a reader of
// either codebase finds the same vocabulary.
const (
	StoreKeyToken          = "token"
	StoreKeyUser           = "user"
	StoreKeyQAHistory      = "qaHistory"
	StoreKeyRecentSearches = "recentSearches"
)

// MaxRecentSearches bounds the persisted recent-search list.
const MaxRecentSearches = 5
