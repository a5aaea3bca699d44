package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
)

type employeeRequest struct {
	FirstName string   `json:"firstName" validate:"required,notblank"`
	LastName  string   `json:"lastName" validate:"required,notblank"`
	Email     string   `json:"email" validate:"required,email"`
	Birthday  string   `json:"birthday" validate:"required,datetime=2006-01-02,pastdate"`
	Hobbies   []string `json:"hobbies" validate:"required,dive,required,notblank"`
}

// readEmployeeInput 读取并校验请求体，失败时已经写好响应
func (h *Handler) readEmployeeInput(w http.ResponseWriter, r *http.Request) (domain.EmployeeInput, bool) {
	var req employeeRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return domain.EmployeeInput{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return domain.EmployeeInput{}, false
	}

	birthday, err := domain.ParseDate(req.Birthday)
	if err != nil {
		h.badRequest(w, r, err)
		return domain.EmployeeInput{}, false
	}

	return domain.EmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Birthday:  birthday,
		Hobbies:   req.Hobbies,
	}, true
}

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.Context().Value(EmployeeIDCtx).(uuid.UUID)

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, employee)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readEmployeeInput(w, r)
	if !ok {
		return
	}

	employee, err := h.employees.Create(r.Context(), in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.Context().Value(EmployeeIDCtx).(uuid.UUID)

	in, ok := h.readEmployeeInput(w, r)
	if !ok {
		return
	}

	employee, err := h.employees.Update(r.Context(), id, in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.Context().Value(EmployeeIDCtx).(uuid.UUID)

	employee, err := h.employees.Delete(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, employee)
}
