package domain

import "time"

type Visitor struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Phone            string    `json:"phone" db:"phone"`
	Gender           string    `json:"gender" db:"gender"`
	Service          string    `json:"service" db:"service"`
	BirthMonth       int       `json:"birth_month" db:"birth_month"`
	BirthDay         int       `json:"birth_day" db:"birth_day"`
	MaritalStatus    string    `json:"marital_status" db:"marital_status"`
	AnniversaryMonth int       `json:"anniversary_month" db:"anniversary_month"`
	AnniversaryDay   int       `json:"anniversary_day" db:"anniversary_day"`
	Notes            string    `json:"notes" db:"notes"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
