package service

import "time"

// SignUpInput is the registration payload; Password is in clear text.
type SignUpInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// EntryPath locates a subcategory inside a category of the caller.
type EntryPath struct {
	CategoryID    int
	SubcategoryID int
}

// LogFilter supports audit history filtering by time range, type and entity.
type LogFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Type   string    // "", "CREATE", "UPDATE", "DELETE"
	Entity string    // "", "CATEGORY", "ENTRY", ...
}
