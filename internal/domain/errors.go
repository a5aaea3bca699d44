package domain

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("员工不存在")
	ErrDuplicateEmail     = errors.New("邮箱已存在")
	ErrInconsistentDelete = errors.New("删除的员工数量与预期不符")
)
