package model

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)
