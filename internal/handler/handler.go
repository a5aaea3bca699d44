package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
)

type EmployeeService interface {
	List(ctx context.Context) ([]domain.EmployeeView, error)
	Get(ctx context.Context, publicID uuid.UUID) (domain.EmployeeView, error)
	Create(ctx context.Context, in domain.EmployeeInput) (domain.EmployeeView, error)
	Update(ctx context.Context, publicID uuid.UUID, in domain.EmployeeInput) (domain.EmployeeView, error)
	Delete(ctx context.Context, publicID uuid.UUID) (domain.EmployeeView, error)
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	employees  EmployeeService
	translator ut.Translator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, employees EmployeeService) (*Handler, error) {
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")

	validate, err := newValidator(trans)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		employees:  employees,
		translator: trans,

		Mux: chi.NewRouter(),
	}, nil
}

// 注册默认翻译以及自定义校验规则
func newValidator(trans ut.Translator) (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := registerCustomValidations(validate, trans); err != nil {
		return nil, err
	}

	return validate, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/employees", func(r chi.Router) {
		// 读操作公开，写操作需要 API 密钥
		r.Get("/", h.GetAllEmployees)
		r.With(h.apiKey).Post("/", h.CreateEmployee)
		r.Route("/{id}", func(r chi.Router) {
			r.With(h.employeeID).Get("/", h.GetEmployee)
			r.With(h.apiKey, h.employeeID).Put("/", h.UpdateEmployee)
			r.With(h.apiKey, h.employeeID).Delete("/", h.DeleteEmployee)
		})
	})
}
