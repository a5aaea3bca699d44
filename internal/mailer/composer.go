package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

var ErrUnsupportedEvent = errors.New("不支持的事件类型")

type mailKind struct {
	template string
	subject  string
}

var mailKinds = map[domain.EventType]mailKind{
	domain.EventTypeCreated: {template: "employee_created.html", subject: "员工管理系统 - 欢迎加入"},
	domain.EventTypeUpdated: {template: "employee_updated.html", subject: "员工管理系统 - 个人信息已更新"},
	domain.EventTypeDeleted: {template: "employee_deleted.html", subject: "员工管理系统 - 账户已注销"},
}

// Composer 把员工事件渲染成发给该员工的邮件
type Composer struct {
	from      string
	templates *template.Template
}

func NewComposer(from string, templates *template.Template) *Composer {
	return &Composer{from: from, templates: templates}
}

func (c *Composer) Compose(body []byte) (*mail.Msg, error) {
	event := domain.EmployeeEvent{}
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("事件反序列化失败: %w", err)
	}

	kind, ok := mailKinds[event.EventType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEvent, event.EventType)
	}

	tmpl := c.templates.Lookup(kind.template)
	if tmpl == nil {
		return nil, fmt.Errorf("邮件模板 %s 不存在", kind.template)
	}

	msg := mail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return nil, err
	}
	if err := msg.To(event.EmployeeData.Email); err != nil {
		return nil, err
	}
	if err := msg.SetBodyHTMLTemplate(tmpl, event.EmployeeData); err != nil {
		return nil, err
	}
	msg.Subject(kind.subject)

	return msg, nil
}
