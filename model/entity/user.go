package entity

// User is an operator account. Movements reference users by username
// snapshot, not by foreign key, so history survives account changes.
type User struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"column:username;type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}
