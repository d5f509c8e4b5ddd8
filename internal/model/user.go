package model

// User is an account that can log in. Password is stored as given in the
// users document (plaintext unless the entry holds a bcrypt hash).
type User struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Username string `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Role     Role   `json:"role" gorm:"size:16;not null"`
	Password string `json:"password" gorm:"size:255;not null"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// UserView is the public projection of a User echoed after login.
type UserView struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// View strips the id and password from u.
func (u User) View() UserView {
	return UserView{Username: u.Username, Role: u.Role}
}
