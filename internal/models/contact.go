package models

import "time"

// Subject is a lookup row for contact-form subjects.
type Subject struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100)"`
}

// Contact is a message submitted through the contact form.
type Contact struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"type:varchar(255)"`
	Phone     string    `json:"phone" gorm:"type:varchar(30)"`
	SubjectID int       `json:"subject_id"`
	Subject   Subject   `json:"subject" gorm:"foreignKey:SubjectID"`
	Message   string    `json:"message" gorm:"type:varchar(4000)"`
	CreatedAt time.Time `json:"created_at"`
}
