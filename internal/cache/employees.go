package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
)

// 员工数据以 JSON 对象缓存，不会和这个值冲突
const invalidated = "invalidated"

type store interface {
	FindByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindAll(ctx context.Context) ([]*domain.Employee, error)
	Save(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	DeleteByPublicID(ctx context.Context, publicID uuid.UUID) (int64, error)
}

// Client 是 redis 客户端中用到的部分，*redis.Client 满足这个接口
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// EmployeeStore 在按公开 ID 查询时先查 redis。
// 写操作前后都会把对应的键标记为失效，标记存在期间查询直接走数据库且不回填，
// 回填使用 SetNX，所以读到旧数据的查询不会覆盖写操作留下的标记。
// redis 只是缓存，写操作本身成功后 redis 的错误只记录警告。
type EmployeeStore struct {
	next               store
	rdb                Client
	expiration         time.Duration
	invalidationWindow time.Duration
}

// invalidationWindow 需要大于一次数据库查询的最长耗时
func NewEmployeeStore(next store, rdb Client, expiration, invalidationWindow time.Duration) *EmployeeStore {
	return &EmployeeStore{
		next:               next,
		rdb:                rdb,
		expiration:         expiration,
		invalidationWindow: invalidationWindow,
	}
}

func employeeKey(publicID uuid.UUID) string {
	return "employee:" + publicID.String()
}

func (s *EmployeeStore) FindByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Employee, error) {
	key := employeeKey(publicID)

	data, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil && string(data) == invalidated:
		// 刚被写过，标记过期前不回填
		return s.next.FindByPublicID(ctx, publicID)
	case err == nil:
		employee := &domain.Employee{}
		if err := json.Unmarshal(data, employee); err == nil {
			return employee, nil
		}
		slog.Warn("缓存中的员工数据无法解析", "key", key)
	case !errors.Is(err, redis.Nil):
		// redis 不可用时直接查数据库
		slog.Warn("读取员工缓存失败", "key", key, "error", err)
	}

	employee, err := s.next.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(employee); err == nil {
		if err := s.rdb.SetNX(ctx, key, data, s.expiration).Err(); err != nil {
			slog.Warn("写入员工缓存失败", "key", key, "error", err)
		}
	}

	return employee, nil
}

func (s *EmployeeStore) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return s.next.FindByEmail(ctx, email)
}

func (s *EmployeeStore) FindAll(ctx context.Context) ([]*domain.Employee, error) {
	return s.next.FindAll(ctx)
}

func (s *EmployeeStore) Save(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	s.invalidate(ctx, employee.PublicID)

	saved, err := s.next.Save(ctx, employee)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, saved.PublicID)

	return saved, nil
}

func (s *EmployeeStore) DeleteByPublicID(ctx context.Context, publicID uuid.UUID) (int64, error) {
	s.invalidate(ctx, publicID)

	count, err := s.next.DeleteByPublicID(ctx, publicID)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, publicID)

	return count, nil
}

// invalidate 覆盖已有的缓存并重新开始计时
func (s *EmployeeStore) invalidate(ctx context.Context, publicID uuid.UUID) {
	key := employeeKey(publicID)
	if err := s.rdb.Set(ctx, key, invalidated, s.invalidationWindow).Err(); err != nil {
		slog.Warn("标记员工缓存失效失败", "key", key, "error", err)
	}
}
