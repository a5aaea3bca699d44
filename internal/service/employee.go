package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
)

// Store 是持久化层的最小抽象，找不到记录时返回 domain.ErrEmployeeNotFound
type Store interface {
	FindByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindAll(ctx context.Context) ([]*domain.Employee, error)
	Save(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	DeleteByPublicID(ctx context.Context, publicID uuid.UUID) (int64, error)
}

// EventSink 把员工变更事件交给消息主题，不等待投递确认
type EventSink interface {
	Publish(ctx context.Context, eventType domain.EventType, view domain.EmployeeView) error
}

type EmployeeService struct {
	store Store
	sink  EventSink
	newID func() uuid.UUID
}

// NewEmployeeService 中 newID 为 nil 时使用随机 UUID
func NewEmployeeService(store Store, sink EventSink, newID func() uuid.UUID) *EmployeeService {
	if newID == nil {
		newID = uuid.New
	}
	return &EmployeeService{store: store, sink: sink, newID: newID}
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.EmployeeView, error) {
	employees, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]domain.EmployeeView, 0, len(employees))
	for _, employee := range employees {
		views = append(views, domain.ToView(employee))
	}

	return views, nil
}

func (s *EmployeeService) Get(ctx context.Context, publicID uuid.UUID) (domain.EmployeeView, error) {
	employee, err := s.store.FindByPublicID(ctx, publicID)
	if err != nil {
		return domain.EmployeeView{}, err
	}

	return domain.ToView(employee), nil
}

func (s *EmployeeService) Create(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeView, error) {
	// 只做预检查，并发创建同一邮箱时由数据库唯一约束兜底
	_, err := s.store.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		slog.Info("邮箱已存在，无法创建员工", "email", in.Email)
		return domain.EmployeeView{}, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrEmployeeNotFound):
		return domain.EmployeeView{}, err
	}

	employee := domain.ToEntity(in)
	employee.PublicID = s.newID()

	saved, err := s.store.Save(ctx, employee)
	if err != nil {
		return domain.EmployeeView{}, err
	}

	view := domain.ToView(saved)
	if err := s.publish(ctx, domain.EventTypeCreated, view); err != nil {
		return domain.EmployeeView{}, err
	}

	return view, nil
}

// Update 整体替换员工信息，内部 ID 和公开 ID 保持不变。这里不会重新检查邮箱是否与其他员工冲突
func (s *EmployeeService) Update(ctx context.Context, publicID uuid.UUID, in domain.EmployeeInput) (domain.EmployeeView, error) {
	existing, err := s.store.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			slog.Info("尝试更新不存在的员工", "employeeId", publicID)
		}
		return domain.EmployeeView{}, err
	}

	employee := domain.ToEntity(in)
	employee.ID = existing.ID
	employee.PublicID = existing.PublicID

	saved, err := s.store.Save(ctx, employee)
	if err != nil {
		return domain.EmployeeView{}, err
	}

	view := domain.ToView(saved)
	if err := s.publish(ctx, domain.EventTypeUpdated, view); err != nil {
		return domain.EmployeeView{}, err
	}

	return view, nil
}

// Delete 返回删除前的员工信息，事件中携带的也是这份信息
func (s *EmployeeService) Delete(ctx context.Context, publicID uuid.UUID) (domain.EmployeeView, error) {
	existing, err := s.store.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			slog.Info("尝试删除不存在的员工", "employeeId", publicID)
		}
		return domain.EmployeeView{}, err
	}
	view := domain.ToView(existing)

	count, err := s.store.DeleteByPublicID(ctx, publicID)
	if err != nil {
		return domain.EmployeeView{}, err
	}

	switch {
	case count == 0:
		// 查询和删除之间被其他请求删掉了
		return domain.EmployeeView{}, domain.ErrEmployeeNotFound
	case count > 1:
		return domain.EmployeeView{}, fmt.Errorf("%w: employeeId=%s, count=%d", domain.ErrInconsistentDelete, publicID, count)
	}

	if err := s.publish(ctx, domain.EventTypeDeleted, view); err != nil {
		return domain.EmployeeView{}, err
	}

	return view, nil
}

// publish 失败时不会回滚已经写入的数据
func (s *EmployeeService) publish(ctx context.Context, eventType domain.EventType, view domain.EmployeeView) error {
	slog.Info("发布员工事件", "eventType", eventType, "employeeId", view.EmployeeID)
	if err := s.sink.Publish(ctx, eventType, view); err != nil {
		slog.Error("员工事件发布失败，数据已写入", "eventType", eventType, "employeeId", view.EmployeeID, "error", err)
		return err
	}
	return nil
}
