package handler

type ContextKey string

var (
	EmployeeIDCtx ContextKey = "employeeId"
)
