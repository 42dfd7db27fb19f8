package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/org-structure-audit/internal/audit"
	"github.com/org-structure-audit/internal/config"
	"github.com/org-structure-audit/internal/domain"
	"github.com/org-structure-audit/internal/dto"
	"github.com/org-structure-audit/internal/hierarchy"
	"github.com/org-structure-audit/internal/ingest"
	"github.com/org-structure-audit/internal/metrics"
	"github.com/org-structure-audit/internal/repository"
)

// Источники состава для метрик и логов
const (
	SourceUpload = "upload"
	SourceStore  = "store"
)

// Outcome - результат одного запуска проверки
type Outcome struct {
	RunID     uuid.UUID
	Employees int
	Result    *audit.Result
}

// AuditService определяет интерфейс бизнес-логики проверки оргструктуры
type AuditService interface {
	AuditUpload(ctx context.Context, body io.Reader, query *dto.AuditQuery) (*Outcome, error)
	AuditStored(ctx context.Context, query *dto.AuditQuery) (*Outcome, error)
	Import(ctx context.Context, body io.Reader, query *dto.ImportQuery) (int, error)
}

type auditService struct {
	empRepo  repository.EmployeeRepository
	defaults config.AuditConfig
	logger   *slog.Logger
}

// NewAuditService создаёт новый экземпляр сервиса.
// empRepo может быть nil, если нужны только проверки загруженных файлов.
func NewAuditService(empRepo repository.EmployeeRepository, defaults config.AuditConfig, logger *slog.Logger) AuditService {
	return &auditService{
		empRepo:  empRepo,
		defaults: defaults,
		logger:   logger,
	}
}

func (s *auditService) AuditUpload(ctx context.Context, body io.Reader, query *dto.AuditQuery) (*Outcome, error) {
	// Настройки проверяем до разбора файла
	thresholds, err := s.thresholds(query)
	if err != nil {
		s.observeFailure(SourceUpload, err)
		return nil, err
	}

	roster, err := s.parse(body, query.Strict)
	if err != nil {
		s.observeFailure(SourceUpload, err)
		return nil, err
	}

	return s.run(ctx, SourceUpload, roster, thresholds)
}

func (s *auditService) AuditStored(ctx context.Context, query *dto.AuditQuery) (*Outcome, error) {
	thresholds, err := s.thresholds(query)
	if err != nil {
		s.observeFailure(SourceStore, err)
		return nil, err
	}

	employees, err := s.empRepo.List(ctx)
	if err != nil {
		s.observeFailure(SourceStore, err)
		return nil, err
	}

	return s.run(ctx, SourceStore, domain.RosterOf(employees...), thresholds)
}

func (s *auditService) Import(ctx context.Context, body io.Reader, query *dto.ImportQuery) (int, error) {
	roster, err := s.parse(body, query.Strict)
	if err != nil {
		return 0, err
	}

	if err := s.empRepo.ReplaceAll(ctx, roster.Employees()); err != nil {
		return 0, err
	}

	metrics.EmployeesImported.Add(float64(roster.Len()))
	s.logger.InfoContext(ctx, "employees imported", slog.Int("employees", roster.Len()))

	return roster.Len(), nil
}

func (s *auditService) run(ctx context.Context, source string, roster *domain.Roster, thresholds audit.Thresholds) (*Outcome, error) {
	start := time.Now()

	h, err := hierarchy.Build(roster)
	if err != nil {
		s.observeFailure(source, err)
		return nil, err
	}

	result, err := audit.Evaluate(h, thresholds)
	if err != nil {
		s.observeFailure(source, err)
		return nil, err
	}

	metrics.AuditDuration.Observe(time.Since(start).Seconds())
	metrics.AuditsTotal.WithLabelValues(source, metrics.ResultOK).Inc()
	for _, f := range result.Findings {
		metrics.FindingsTotal.WithLabelValues(string(f.Kind)).Inc()
	}

	outcome := &Outcome{
		RunID:     uuid.New(),
		Employees: roster.Len(),
		Result:    result,
	}

	s.logger.InfoContext(ctx, "audit completed",
		slog.String("run_id", outcome.RunID.String()),
		slog.String("source", source),
		slog.Int("employees", outcome.Employees),
		slog.Int("findings", len(result.Findings)),
	)

	return outcome, nil
}

func (s *auditService) parse(body io.Reader, strict *bool) (*domain.Roster, error) {
	useStrict := s.defaults.StrictParsing
	if strict != nil {
		useStrict = *strict
	}
	return ingest.NewParser(ingest.HandlerFor(useStrict, s.logger)).Parse(body)
}

// thresholds дополняет параметры запроса значениями из конфигурации
func (s *auditService) thresholds(query *dto.AuditQuery) (audit.Thresholds, error) {
	lower, upper, maxLevel := s.defaults.LowerCoefficient, s.defaults.UpperCoefficient, s.defaults.MaxLevel
	if query.Lower != "" {
		lower = query.Lower
	}
	if query.Upper != "" {
		upper = query.Upper
	}
	if query.MaxLevel != 0 {
		maxLevel = query.MaxLevel
	}

	thresholds, err := audit.ParseThresholds(lower, upper, maxLevel)
	if err != nil {
		return audit.Thresholds{}, err
	}
	if err := thresholds.Validate(); err != nil {
		return audit.Thresholds{}, err
	}
	return thresholds, nil
}

func (s *auditService) observeFailure(source string, err error) {
	result := metrics.ResultError
	if isRejection(err) {
		result = metrics.ResultRejected
	}
	metrics.AuditsTotal.WithLabelValues(source, result).Inc()
}

// isRejection отделяет ошибки входных данных от внутренних
func isRejection(err error) bool {
	for _, target := range []error{
		domain.ErrCEONotFound,
		domain.ErrMultipleRoots,
		domain.ErrInvalidRange,
		domain.ErrMalformedRecord,
		domain.ErrInvalidHeader,
		domain.ErrDuplicateEmployee,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
