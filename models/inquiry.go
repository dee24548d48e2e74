package models

import "time"

const InquiryStatusNew = "New"

// ContactInquiry is a message sent through the contact form.
type ContactInquiry struct {
	ID          int64     `json:"inquiry_id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	InquiryDate time.Time `json:"inquiry_date"`
	Status      string    `json:"status"`
}
