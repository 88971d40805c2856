package contact

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrInvalidForm = errors.New("invalid contact form")

// Form fields are only checked for presence.
type Form struct {
	Nombre   string `json:"nombre" validate:"required"`
	Apellido string `json:"apellido" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Consulta string `json:"consulta" validate:"required"`
}

// Service acknowledges contact requests. Nothing is delivered: the submission is only logged.
type Service struct {
	email    string
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(email string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		email:    email,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *Service) Submit(_ context.Context, form Form) error {
	form = trim(form)

	if err := s.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return fmt.Errorf("%w: missing %s", ErrInvalidForm, strings.Join(fields, ", "))
		}
		return fmt.Errorf("validate.Struct: %w", err)
	}

	s.logger.Info("contact request received",
		zap.String("to", s.email),
		zap.Int("nombre_len", len(form.Nombre)),
		zap.Int("apellido_len", len(form.Apellido)),
		zap.Int("email_len", len(form.Email)),
		zap.Int("consulta_len", len(form.Consulta)))

	return nil
}

func (s *Service) MailtoURL() string {
	return (&url.URL{Scheme: "mailto", Opaque: s.email}).String()
}

func trim(f Form) Form {
	return Form{
		Nombre:   strings.TrimSpace(f.Nombre),
		Apellido: strings.TrimSpace(f.Apellido),
		Email:    strings.TrimSpace(f.Email),
		Consulta: strings.TrimSpace(f.Consulta),
	}
}
