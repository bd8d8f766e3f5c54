package models

// Role is a coarse authorization label.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an application user account
type User struct {
	Base
	Username string `gorm:"size:125;uniqueIndex;not null" json:"username"`
	// Password always holds the bcrypt digest once persisted.
	Password string `gorm:"size:125;not null" json:"-"`
	FullName string `gorm:"column:fullname;size:125" json:"fullname"`
	Role     Role   `gorm:"size:125;not null" json:"role"`
}

// TableName pins the table name used by the migrations.
func (User) TableName() string { return "users" }

// Kind implements Record.
func (*User) Kind() string { return "user" }

// MergeMutable copies username, full name, role and the (already hashed) password.
func (u *User) MergeMutable(src *User) {
	u.Username = src.Username
	u.FullName = src.FullName
	u.Role = src.Role
	u.Password = src.Password
}
