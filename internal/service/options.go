package service

import "time"

const (
	defaultTokenTTL = time.Hour

	// borrow_date layout
	borrowDateLayout = "2006-01-02"
)

// Options configures the services built by NewService.
type Options struct {
	SigningKey    string
	TokenTTL      time.Duration
	HashPasswords bool

	// Now is the wall clock used for borrow dates and history timestamps.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TokenTTL <= 0 {
		o.TokenTTL = defaultTokenTTL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// LogFilter supports history filtering by time range, type and user.
type LogFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Type   string    // "", "SIGN_UP", "BORROW", "RETURN"
	UserID int       // 0 means every user
}
