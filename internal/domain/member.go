package domain

import "time"

type MembershipStatus string

const (
	MembershipActive      MembershipStatus = "active"
	MembershipInactive    MembershipStatus = "inactive"
	MembershipTransferred MembershipStatus = "transferred"
)

type MemberCategory string

const (
	CategoryAdult    MemberCategory = "adult"
	CategoryYouth    MemberCategory = "youth"
	CategoryChildren MemberCategory = "children"
)

type Member struct {
	ID               int64            `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Phone            string           `json:"phone" db:"phone"`
	Email            string           `json:"email" db:"email"`
	Gender           string           `json:"gender" db:"gender"`
	Category         MemberCategory   `json:"category" db:"category"`
	MembershipStatus MembershipStatus `json:"membership_status" db:"membership_status"`
	BirthMonth       int              `json:"birth_month" db:"birth_month"`
	BirthDay         int              `json:"birth_day" db:"birth_day"`
	MaritalStatus    string           `json:"marital_status" db:"marital_status"`
	AnniversaryMonth int              `json:"anniversary_month" db:"anniversary_month"`
	AnniversaryDay   int              `json:"anniversary_day" db:"anniversary_day"`
	Address          string           `json:"address" db:"address"`
	Notes            string           `json:"notes" db:"notes"`
	JoinDate         string           `json:"join_date" db:"join_date"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
}
