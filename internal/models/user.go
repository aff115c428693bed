package models

// IssuedBook is an active loan held by a user.
type IssuedBook struct {
	BookID     int    `json:"book_id"`
	BorrowDate string `json:"borrow_date"` // YYYY-MM-DD, process-local date
}

// User is a registered reader. Password holds either the plain text or a bcrypt
// hash depending on the configured credential mode.
type User struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Password    string       `json:"password"`
	IssuedBooks []IssuedBook `json:"issued_books"`

	Extra Extra `json:"-"`
}

type userFields User

var userKeys = []string{"id", "name", "password", "issued_books"}

func (u User) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(userFields(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var f userFields
	extra, err := decodeWithExtra(data, &f, userKeys...)
	if err != nil {
		return err
	}
	*u = User(f)
	u.Extra = extra
	return nil
}

// HasBorrowed reports whether bookID is among the user's loans and returns the
// borrow date of the first matching loan.
func (u *User) HasBorrowed(bookID int) (string, bool) {
	for _, ib := range u.IssuedBooks {
		if ib.BookID == bookID {
			return ib.BorrowDate, true
		}
	}
	return "", false
}

// Clone returns a copy that does not share the loans slice.
func (u User) Clone() User {
	loans := make([]IssuedBook, len(u.IssuedBooks))
	copy(loans, u.IssuedBooks)
	u.IssuedBooks = loans
	return u
}

// UserDirectory is the persisted user document.
type UserDirectory struct {
	Users []User `json:"users"`

	Extra Extra `json:"-"`
}

type directoryFields UserDirectory

func (d UserDirectory) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(directoryFields(d), d.Extra)
}

func (d *UserDirectory) UnmarshalJSON(data []byte) error {
	var f directoryFields
	extra, err := decodeWithExtra(data, &f, "users")
	if err != nil {
		return err
	}
	*d = UserDirectory(f)
	d.Extra = extra
	return nil
}

// Clone copies the directory so that changes to the clone's users and loans do not reach d.
func (d *UserDirectory) Clone() UserDirectory {
	out := *d
	if d.Users != nil {
		out.Users = make([]User, len(d.Users))
		for i, u := range d.Users {
			out.Users[i] = u.Clone()
		}
	}
	return out
}

// FindUser returns a pointer into d.Users for the first user with the given id, or nil.
func (d *UserDirectory) FindUser(id int) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// NextID is max(existing ids)+1, or 1 for an empty directory.
func (d *UserDirectory) NextID() int {
	maxID := 0
	for _, u := range d.Users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}
