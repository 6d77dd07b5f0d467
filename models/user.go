package models

import "time"

// User is a student record. Identity lives with the external auth provider;
// AuthUID is the provider's subject and the only required field at creation.
type User struct {
	ID          string    `bson:"id" json:"id"`
	AuthUID     string    `bson:"authUid" json:"authUid"`
	FirstName   string    `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName    string    `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Username    string    `bson:"username,omitempty" json:"username,omitempty"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	Photo       string    `bson:"photo,omitempty" json:"photo,omitempty"`
	FCMToken    string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	IsPaid      bool      `bson:"isPaid" json:"isPaid"`
	ClassroomID string    `bson:"classroomId,omitempty" json:"classroomId,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserDetail is a user with their classroom populated for display.
type UserDetail struct {
	User
	Classroom *Classroom `json:"classroom,omitempty"`
	ClassName string     `json:"className,omitempty"`
	Subjects  []Subject  `json:"subjects,omitempty"`
}

// UserUpdate carries the admin-editable fields. Nil means "leave unchanged";
// an empty ClassroomID removes the user from their classroom.
type UserUpdate struct {
	IsPaid      *bool   `json:"isPaid,omitempty"`
	ClassroomID *string `json:"classroomId,omitempty"`
	FCMToken    *string `json:"fcmToken,omitempty"`
}

// AuthEvent is the payload of an auth-provider sync webhook.
type AuthEvent struct {
	UID       string `json:"uid"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Photo     string `json:"photo,omitempty"`
}
