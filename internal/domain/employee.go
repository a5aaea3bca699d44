package domain

import (
	"github.com/google/uuid"
)

type Hobby struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Employee struct {
	ID        int64     `json:"id"`
	PublicID  uuid.UUID `json:"employeeId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Birthday  Date      `json:"birthday"`
	Hobbies   []Hobby   `json:"hobbies"`
}

// EmployeeInput 是写操作的请求载荷，不包含任何标识符
type EmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
	Birthday  Date
	Hobbies   []string
}

// EmployeeView 是对外暴露的员工信息，不包含内部 ID
type EmployeeView struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Birthday   Date      `json:"birthday"`
	Hobbies    []string  `json:"hobbies"`
}
