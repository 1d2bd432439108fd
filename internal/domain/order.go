package domain

// OrderResult describes a placed or cancelled tree order.
type OrderResult struct {
	TreeID  int64
	Message string
}
