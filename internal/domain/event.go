package domain

type EventType string

const (
	EventTypeCreated EventType = "CREATED"
	EventTypeUpdated EventType = "UPDATED"
	EventTypeDeleted EventType = "DELETED"
)

// EmployeeEvent 是发布到消息主题的事件信封
type EmployeeEvent struct {
	EventType    EventType    `json:"event_type"`
	EmployeeData EmployeeView `json:"employee_data"`
}
